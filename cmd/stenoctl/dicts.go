package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/stenocore/steno/dictstack"
	"github.com/stenocore/steno/packeddict"
	"github.com/stenocore/steno/userdict"
)

// dictFlags are the --dict/--userdict flags shared by every subcommand
// that needs a live dictionary stack, pflag.FlagSet per subcommand
// grounded on calvinalkan-agent-task/internal/cli/cmd_ls.go.
type dictFlags struct {
	paths    []string
	userDict string
}

func bindDictFlags(fs *flag.FlagSet) *dictFlags {
	df := &dictFlags{}
	fs.StringArrayVar(&df.paths, "dict", nil, "path to a compiled packed dictionary blob (repeatable)")
	fs.StringVar(&df.userDict, "userdict", "", "path to a user dictionary directory")
	return df
}

// openStack loads every --dict blob (front of stack first, in flag
// order) and, if given, opens the user dictionary at the back of the
// stack -- spec §4.C's front-to-back priority, with the user dictionary
// as the lowest-priority fallback. The returned *userdict.Dictionary is
// nil when --userdict was not given; callers that need
// engine.UserDictionary can pass it straight through since it already
// satisfies that interface.
func (df *dictFlags) openStack() (*dictstack.Stack, *userdict.Dictionary, func() error, error) {
	stack := dictstack.New()

	for _, path := range df.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		coll, err := packeddict.Parse(data)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		for _, d := range coll.Dictionaries {
			stack.Add(d)
		}
	}

	closeFn := func() error { return nil }
	var ud *userdict.Dictionary
	if df.userDict != "" {
		var err error
		ud, err = userdict.Open(df.userDict, userdict.Options{Name: df.userDict})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening user dictionary %s: %w", df.userDict, err)
		}
		stack.Add(ud)
		closeFn = ud.Close
	}

	return stack, ud, closeFn, nil
}
