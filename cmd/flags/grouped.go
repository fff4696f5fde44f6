// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GroupedFlags is a set of flags printed under its own heading in the
// command help
type GroupedFlags struct {
	Name     string
	ShowFlag string
	FlagSet  *pflag.FlagSet
	// Advanced groups are only listed when ShowFlag is given
	Advanced bool
}

// WithGroupedHelp returns a cobra help function that prints [groups] after
// the command usage
func WithGroupedHelp(groups []GroupedFlags) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := cmd.Root().UsageFunc()(cmd); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error showing command usage: %v\n", err)
		}
		for _, group := range groups {
			if group.Advanced && !slices.Contains(args, group.ShowFlag) {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n  (hidden) Use %s to show these options\n", group.Name, group.ShowFlag)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", group.Name)
			group.FlagSet.VisitAll(func(flag *pflag.Flag) {
				fmt.Fprintf(cmd.OutOrStdout(), "  --%s", flag.Name)
				if flag.Value.Type() != "bool" {
					fmt.Fprintf(cmd.OutOrStdout(), " %s", flag.Value.Type())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\t%s\n", flag.Usage)
			})
		}
	}
}

// RegisterFlagGroup defines the flags of a group on [cmd]. Group flags are
// hidden from the regular flag listing and printed by WithGroupedHelp instead.
func RegisterFlagGroup(cmd *cobra.Command, groupName string, showFlag string, advanced bool, defineFlags func(set *pflag.FlagSet)) GroupedFlags {
	show := false
	cmd.Flags().BoolVar(&show, showFlag, false, fmt.Sprintf("Show %s", groupName))
	cmd.Flags().Lookup(showFlag).Hidden = true

	flagSet := pflag.NewFlagSet(groupName, pflag.ContinueOnError)
	defineFlags(flagSet)
	cmd.Flags().AddFlagSet(flagSet)
	flagSet.VisitAll(func(f *pflag.Flag) {
		cmd.Flags().Lookup(f.Name).Hidden = true
	})

	return GroupedFlags{
		Name:     groupName,
		ShowFlag: "--" + showFlag,
		FlagSet:  flagSet,
		Advanced: advanced,
	}
}
