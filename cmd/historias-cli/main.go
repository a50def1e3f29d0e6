// Command historias-cli is a terminal client for the historias clínicas API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinica/historias/pkg/apiclient"
)

var serverURL string

func main() {
	rootCmd := &cobra.Command{
		Use:   "historias-cli",
		Short: "Cliente de la API de Historias Clínicas",
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3000", "Base URL of the API server")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(cedulaCmd())
	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(cursosCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func client() *apiclient.Client {
	return apiclient.New(serverURL)
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all historias clínicas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			historias, err := client().ListHistorias(ctx)
			if err != nil {
				return err
			}
			return printJSON(historias)
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a historia clínica by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext()
			defer cancel()
			h, err := client().GetHistoria(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(h)
		},
	}
}

func cedulaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cedula <cedula>",
		Short: "Search historias clínicas by patient cédula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			historias, err := client().SearchHistoriasByCedula(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(historias)
		},
	}
}

func historiaInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("nombre", "", "Patient name")
	cmd.Flags().Int("edad", 0, "Patient age")
	cmd.Flags().String("cedula", "", "Patient cédula")
	cmd.Flags().String("fecha", "", "Consultation date (YYYY-MM-DD)")
	cmd.Flags().String("sintomas", "", "Symptoms")
	cmd.Flags().String("diagnostico", "", "Diagnosis")
	cmd.Flags().String("tratamiento", "", "Treatment")
	cmd.Flags().String("medico", "", "Physician name")
	cmd.Flags().String("observaciones", "", "Observations")
}

func historiaInputFromFlags(cmd *cobra.Command) apiclient.HistoriaInput {
	in := apiclient.HistoriaInput{}
	in.PacienteNombre, _ = cmd.Flags().GetString("nombre")
	in.PacienteEdad, _ = cmd.Flags().GetInt("edad")
	in.PacienteCedula, _ = cmd.Flags().GetString("cedula")
	in.FechaConsulta, _ = cmd.Flags().GetString("fecha")
	in.Diagnostico, _ = cmd.Flags().GetString("diagnostico")
	in.Tratamiento, _ = cmd.Flags().GetString("tratamiento")
	in.Medico, _ = cmd.Flags().GetString("medico")
	if s, _ := cmd.Flags().GetString("sintomas"); s != "" {
		in.Sintomas = &s
	}
	if o, _ := cmd.Flags().GetString("observaciones"); o != "" {
		in.Observaciones = &o
	}
	return in
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a historia clínica",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			h, err := client().CreateHistoria(ctx, historiaInputFromFlags(cmd))
			if err != nil {
				return err
			}
			return printJSON(h)
		},
	}
	historiaInputFlags(cmd)
	return cmd
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a historia clínica",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext()
			defer cancel()
			h, err := client().UpdateHistoria(ctx, id, historiaInputFromFlags(cmd))
			if err != nil {
				return err
			}
			return printJSON(h)
		},
	}
	historiaInputFlags(cmd)
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a historia clínica",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext()
			defer cancel()
			if err := client().DeleteHistoria(ctx, id); err != nil {
				return err
			}
			fmt.Println("Historia clínica eliminada exitosamente")
			return nil
		},
	}
}

func cursosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursos",
		Short: "Manage cursos",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all cursos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			cursos, err := client().ListCursos(ctx)
			if err != nil {
				return err
			}
			return printJSON(cursos)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Get a curso by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext()
			defer cancel()
			curso, err := client().GetCurso(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(curso)
		},
	})

	createCurso := &cobra.Command{
		Use:   "create",
		Short: "Create a curso",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			curso, err := client().CreateCurso(ctx, cursoInputFromFlags(cmd))
			if err != nil {
				return err
			}
			return printJSON(curso)
		},
	}
	cursoInputFlags(createCurso)
	cmd.AddCommand(createCurso)

	updateCurso := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a curso",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext()
			defer cancel()
			curso, err := client().UpdateCurso(ctx, id, cursoInputFromFlags(cmd))
			if err != nil {
				return err
			}
			return printJSON(curso)
		},
	}
	cursoInputFlags(updateCurso)
	cmd.AddCommand(updateCurso)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a curso",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext()
			defer cancel()
			if err := client().DeleteCurso(ctx, id); err != nil {
				return err
			}
			fmt.Println("Curso eliminado exitosamente")
			return nil
		},
	})

	return cmd
}

func cursoInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("nombre", "", "Course name")
	cmd.Flags().String("descripcion", "", "Course description")
	cmd.Flags().Int("horas", 0, "Duration in hours")
	cmd.Flags().String("profesor", "", "Professor name")
}

func cursoInputFromFlags(cmd *cobra.Command) apiclient.CursoInput {
	in := apiclient.CursoInput{}
	in.Nombre, _ = cmd.Flags().GetString("nombre")
	in.DuracionHoras, _ = cmd.Flags().GetInt("horas")
	in.Profesor, _ = cmd.Flags().GetString("profesor")
	if d, _ := cmd.Flags().GetString("descripcion"); d != "" {
		in.Descripcion = &d
	}
	return in
}
