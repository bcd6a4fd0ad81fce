package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pickwise/internal/cache"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the language model response cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cache entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, dir, err := diskCache()
		if err != nil {
			return err
		}
		removed, err := disk.Prune()
		if err != nil {
			return err
		}
		fmt.Printf("✓ Removed %d expired entries from %s\n", removed, dir)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cache entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, dir, err := diskCache()
		if err != nil {
			return err
		}
		if err := disk.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Printf("✓ Cleared %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func diskCache() (*cache.DiskCache, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	if cfg.Cache.Dir == "" {
		return nil, "", fmt.Errorf("no cache directory configured (cache.dir)")
	}
	return cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.DiskTTL), cfg.Cache.Dir, nil
}
