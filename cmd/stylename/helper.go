package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stylename/internal/helper"
)

func newHelperCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "helper",
		Short: "Print the emitted " + helper.Name + " source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), helper.Source())
			return err
		},
	}
}

func newJoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join [flags] [token...]",
		Short: "Evaluate " + helper.Name + " over the arguments",
		Long: `Run the Go rendition of the runtime helper. A single argument is a single
token; several arguments, or --list, form a sequence. --json reads the value
as JSON (arrays are sequences, null is undefined).`,
		RunE: runJoin,
	}
	f := cmd.Flags()
	f.Bool("list", false, "treat the arguments as a sequence even when there is one")
	f.Bool("json", false, "parse the single argument as a JSON value")
	f.IntSlice("undefined", nil, "sequence positions that are undefined")
	return cmd
}

func runJoin(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	asJSON, _ := f.GetBool("json")
	asList, _ := f.GetBool("list")
	undefined, err := f.GetIntSlice("undefined")
	if err != nil {
		return err
	}

	value, err := joinValue(args, asJSON, asList, undefined)
	if err != nil {
		return err
	}

	module := helper.NewModule()
	helper.NewRegistry().Install(module)
	out, err := module.Call(helper.Name, value)
	if err != nil {
		if errors.Is(err, helper.ErrUndefinedStyleName) {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			return errReported
		}
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.Quote(out))
	return err
}

func joinValue(args []string, asJSON, asList bool, undefined []int) (helper.Value, error) {
	if asJSON {
		if len(args) != 1 || len(undefined) > 0 {
			return helper.Value{}, errors.New("--json takes exactly one argument and no --undefined")
		}
		return helper.ParseJSON([]byte(args[0]))
	}
	if len(args) == 0 && !asList && len(undefined) == 0 {
		return helper.Undefined(), nil
	}
	if len(args) == 1 && !asList && len(undefined) == 0 {
		return helper.Single(args[0]), nil
	}

	size := len(args)
	for _, i := range undefined {
		if i < 0 {
			return helper.Value{}, fmt.Errorf("invalid --undefined index %d", i)
		}
		size = max(size, i+1)
	}
	marked := make(map[int]bool, len(undefined))
	for _, i := range undefined {
		marked[i] = true
	}
	items := make([]helper.Value, 0, size)
	next := 0
	for i := range size {
		if marked[i] || next >= len(args) {
			items = append(items, helper.Undefined())
			continue
		}
		items = append(items, helper.Single(args[next]))
		next++
	}
	if next < len(args) {
		for _, a := range args[next:] {
			items = append(items, helper.Single(a))
		}
	}
	return helper.Many(items...), nil
}
