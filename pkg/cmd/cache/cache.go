package cache

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pitwall/f1insight/pkg/config"
	"github.com/pitwall/f1insight/pkg/timing/diskcache"
)

func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "manage the timing data cache",
	}
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newPurgeCmd())
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "show cache location and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showInfo()
		},
	}
}

func newPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "remove all cached timing data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return purge()
		},
	}
}

func showInfo() error {
	cache, err := diskcache.New(config.CacheDir)
	if err != nil {
		return err
	}
	info, err := cache.Info()
	if err != nil {
		return err
	}
	fmt.Printf("Location: %s\n", info.Dir)
	fmt.Printf("Entries:  %d\n", info.Entries)
	fmt.Printf("Size:     %s\n", humanize.Bytes(info.Size))
	if !info.Oldest.IsZero() {
		fmt.Printf("Oldest:   %s\n", humanize.Time(info.Oldest))
	}
	return nil
}

func purge() error {
	cache, err := diskcache.New(config.CacheDir)
	if err != nil {
		return err
	}
	removed, err := cache.Purge()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d cache entries\n", removed)
	return nil
}
