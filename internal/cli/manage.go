package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// readForm carga un formulario JSON o YAML desde path ("-" lee stdin) y lo
// vuelca en dst usando los tags json de los tipos de dominio.
func (rt *runtime) readForm(path string, dst any) error {
	if path == "" {
		return errors.New("--file is required")
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(rt.in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read form: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("empty form")
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	if err := json.Unmarshal(encoded, dst); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

func (rt *runtime) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(rt.out, string(data))
	return nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func newGetCmd[T any](rt *runtime, short string, get func(context.Context, int) (T, error), fallback string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := get(cmd.Context(), id)
			if err != nil {
				return userMessage(err, fallback)
			}
			return rt.printJSON(item)
		},
	}
}

func newCreateCmd[F, T any](
	rt *runtime,
	short string,
	create func(context.Context, F) (T, error),
	fallback, success string,
) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create --file <form>",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			var form F
			if err := rt.readForm(file, &form); err != nil {
				return err
			}
			item, err := create(cmd.Context(), form)
			if err != nil {
				return userMessage(err, fallback)
			}
			fmt.Fprintln(rt.out, success)
			return rt.printJSON(item)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Formulario JSON o YAML (- para stdin)")
	return cmd
}

func newUpdateCmd[F, T any](
	rt *runtime,
	short string,
	update func(context.Context, int, F) (T, error),
	fallback, success string,
) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <id> --file <form>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var form F
			if err := rt.readForm(file, &form); err != nil {
				return err
			}
			item, err := update(cmd.Context(), id, form)
			if err != nil {
				return userMessage(err, fallback)
			}
			fmt.Fprintln(rt.out, success)
			return rt.printJSON(item)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Formulario JSON o YAML (- para stdin)")
	return cmd
}

func newDeleteCmd(rt *runtime, short string, del func(context.Context, int) (string, error), fallback, success string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			msg, err := del(cmd.Context(), id)
			if err != nil {
				return userMessage(err, fallback)
			}
			if msg == "" {
				msg = success
			}
			fmt.Fprintln(rt.out, msg)
			return nil
		},
	}
}
