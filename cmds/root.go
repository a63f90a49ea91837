package cmds

import (
	"flag"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the fsprobe command tree. mountsFile overrides the
// mount-table location for every subcommand; empty selects the platform
// default.
func NewRootCmd(version, mountsFile string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "fsprobe [command]",
		Short:             `Filesystem introspection queries`,
		Version:           version,
		DisableAutoGenTag: true,
	}
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(newCmdMountPoint(mountsFile))
	rootCmd.AddCommand(newCmdFilesystemName(mountsFile))
	rootCmd.AddCommand(newCmdFreeSpace(mountsFile))
	rootCmd.AddCommand(newCmdContains(mountsFile))
	rootCmd.AddCommand(newCmdStat(mountsFile))
	rootCmd.AddCommand(newCmdMkTemp(mountsFile))
	rootCmd.AddCommand(newCmdDescribe(mountsFile))

	return rootCmd
}
