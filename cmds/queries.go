package cmds

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pathwise/fsprobe/internal/probe"
)

func newCmdMountPoint(mountsFile string) *cobra.Command {
	return &cobra.Command{
		Use:   "mountpoint <absolute-path>",
		Short: "Resolve the mount point containing a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := probe.NewProber(cmd.Context(), mountsFile)
			mp, err := p.MountPoint(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mp)
			return nil
		},
	}
}

func newCmdFilesystemName(mountsFile string) *cobra.Command {
	return &cobra.Command{
		Use:   "fsname <mount-point>",
		Short: "Name the filesystem mounted at a mount point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := probe.NewProber(cmd.Context(), mountsFile)
			name, err := p.FilesystemName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func newCmdFreeSpace(mountsFile string) *cobra.Command {
	return &cobra.Command{
		Use:   "free <path> <bytes>",
		Short: "Check whether a filesystem has at least the given bytes free",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid byte count %q: %w", args[1], err)
			}
			p := probe.NewProber(cmd.Context(), mountsFile)
			ok, err := p.EnoughSpaceInDirectory(cmd.Context(), args[0], size)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newCmdContains(mountsFile string) *cobra.Command {
	return &cobra.Command{
		Use:   "contains <path> <prefix>",
		Short: "Check whether a path is contained within a prefix path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := probe.NewProber(cmd.Context(), mountsFile)
			ok, err := p.PathStartsWith(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newCmdStat(mountsFile string) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Print filesystem statistics for the filesystem containing a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := probe.NewProber(cmd.Context(), mountsFile)
			stat, err := p.StatVFS(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "block size:      %d\n", stat.Bsize)
			fmt.Fprintf(out, "blocks:          %d\n", stat.Blocks)
			fmt.Fprintf(out, "blocks free:     %d\n", stat.Bfree)
			fmt.Fprintf(out, "blocks avail:    %d\n", stat.Bavail)
			fmt.Fprintf(out, "bytes available: %d\n", uint64(stat.Bavail)*uint64(stat.Bsize)) //nolint:unconvert // field widths differ between unix platforms
			return nil
		},
	}
}

func newCmdMkTemp(mountsFile string) *cobra.Command {
	return &cobra.Command{
		Use:   "mktemp <directory>",
		Short: "Create the directory if needed and a temporary file inside it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := probe.NewProber(cmd.Context(), mountsFile)
			f, err := p.CreateTemporaryFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			// The file outlives the command.
			f.Keep()
			fmt.Fprintln(cmd.OutOrStdout(), f.Name())
			return f.Close()
		},
	}
}

func newCmdDescribe(mountsFile string) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <path>",
		Short: "Print mount point, filesystem name, free space and backing device for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := probe.NewProber(cmd.Context(), mountsFile)
			desc, err := p.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:            %s\n", desc.Path)
			fmt.Fprintf(out, "mount point:     %s\n", desc.MountPoint)
			if desc.FilesystemName != "" {
				fmt.Fprintf(out, "filesystem:      %s\n", desc.FilesystemName)
			}
			fmt.Fprintf(out, "bytes available: %d\n", desc.AvailableBytes)
			if desc.Disk != "" {
				fmt.Fprintf(out, "disk:            %s\n", desc.Disk)
			}
			if desc.Partition != "" {
				fmt.Fprintf(out, "partition:       %s\n", desc.Partition)
			}
			return nil
		},
	}
}
