package main

import (
	"fmt"
	"strings"

	"ctor-binder/internal/analyze"
)

func runNames(e *env, args []string) error {
	var separator string

	fs := subcommand(e, "names", "<import/path.Func>...")
	fs.StringVarP(&separator, "separator", "s", "\n", "separator printed between names")

	if ok, err := parse(fs, args); !ok {
		return err
	}

	if fs.NArg() == 0 {
		return fmt.Errorf("names: expected at least one function, e.g. ctor-binder/store.NewOrder")
	}

	resolver := analyze.NewParamResolver(e.dir, e.logger)
	for _, fn := range fs.Args() {
		names, err := resolver.ParamNames(fn)
		if err != nil {
			return fmt.Errorf("names: %w", err)
		}

		fmt.Fprintln(e.stdout, strings.Join(names, separator))
	}

	return nil
}
