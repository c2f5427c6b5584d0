package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/michelson/encoded"
	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/internal/config"
	"github.com/wippyai/michelson/micheline"
	"github.com/wippyai/michelson/michelson"
)

type packResult struct {
	Packed string `json:"packed"`
	Hash   string `json:"hash"`
}

func encodeCommand(a *app) *cobra.Command {
	var as string
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Validate Micheline JSON and print its packed form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readInput(args)
			if err != nil {
				return err
			}
			typed, err := a.parseTyped(src, as)
			if err != nil {
				return err
			}
			packed, err := a.tr.Pack(typed)
			if err != nil {
				return fmt.Errorf("pack: %w", err)
			}

			if a.cfg.Output == config.OutputHex {
				_, err = fmt.Fprintln(a.stdout, hex.EncodeToString(packed))
				return err
			}
			return a.writeJSON(packResult{
				Packed: hex.EncodeToString(packed),
				Hash:   encoded.ScriptExprHash(packed),
			})
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "require the value to be data, instruction or type")
	return cmd
}

func decodeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode packed bytes into Micheline JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 1 {
				raw = args[0]
			} else {
				buf, err := io.ReadAll(a.stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				raw = string(buf)
			}

			data, err := parseHex(raw)
			if err != nil {
				return err
			}
			typed, err := a.tr.Unpack(data)
			if err != nil {
				return fmt.Errorf("unpack: %w", err)
			}
			node, err := a.tr.ToMicheline(typed)
			if err != nil {
				return err
			}
			return a.writeNode(node)
		},
	}
}

func hashCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash [file]",
		Short: "Print the script expression hash of Micheline JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readInput(args)
			if err != nil {
				return err
			}
			typed, err := a.parseTyped(src, "")
			if err != nil {
				return err
			}
			packed, err := a.tr.Pack(typed)
			if err != nil {
				return fmt.Errorf("pack: %w", err)
			}
			_, err = fmt.Fprintln(a.stdout, encoded.ScriptExprHash(packed))
			return err
		},
	}
}

func primsCommand(a *app) *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:   "prims",
		Short: "List registered primitives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.New().Headers("TAG", "NAME", "FAMILY", "GO TYPE", "SHAPE")
			count := 0
			for _, p := range a.tr.Registry().Prims() {
				if family != "" && p.Family.String() != family {
					continue
				}
				t.Row(fmt.Sprintf("0x%02x", p.Tag), p.Name, p.Family.String(), p.GoType().String(), p.Shape())
				count++
			}
			if count == 0 {
				return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("no primitives in family %q", family))
			}
			_, err := fmt.Fprintln(a.stdout, t.Render())
			return err
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "only list data, instruction, type or section primitives")
	return cmd
}

func inspectCommand(a *app) *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show how Micheline JSON maps onto typed primitives",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return runInteractive(a)
			}
			src, err := a.readInput(args)
			if err != nil {
				return err
			}
			rep, err := inspect(a.tr, src)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.stdout, rep.String())
			return err
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "interactive mode with TUI")
	return cmd
}

func (a *app) readInput(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

func (a *app) parseTyped(src []byte, as string) (michelson.Michelson, error) {
	node, err := micheline.UnmarshalJSON(src, micheline.WithMaxDepth(a.tr.MaxDepth()))
	if err != nil {
		return nil, err
	}

	var typed michelson.Michelson
	switch as {
	case "":
		typed, err = a.tr.FromMicheline(node)
	case "data":
		typed, err = a.tr.DataFromMicheline(node)
	case "instruction":
		typed, err = a.tr.InstructionFromMicheline(node)
	case "type":
		typed, err = a.tr.TypeFromMicheline(node)
	default:
		return nil, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("--as must be data, instruction or type, got %q", as))
	}
	if err != nil {
		a.logger.Debug("rejected input", zap.Error(err))
		return nil, err
	}
	return typed, nil
}

func (a *app) writeNode(n micheline.Node) error {
	var (
		out []byte
		err error
	)
	if a.cfg.Pretty {
		out, err = micheline.MarshalIndentJSON(n, "  ")
	} else {
		out, err = micheline.MarshalJSON(n)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(out))
	return err
}

func (a *app) writeJSON(v any) error {
	var (
		out []byte
		err error
	)
	if a.cfg.Pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(out))
	return err
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "invalid hex")
	}
	return data, nil
}
