package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openzx/proofline"
	"github.com/openzx/proofline/pkg/adapters/file"
	"github.com/openzx/proofline/pkg/adapters/memory"
	"github.com/openzx/proofline/pkg/adapters/redis"
	"github.com/openzx/proofline/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "proofline",
	Short: "Proofline is an undo/redo engine for ZX-calculus proofs",
	Long:  `Proofline edits ZX-calculus diagrams through reversible commands and records rewrite steps as navigable, persistent proofs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("store", "file", "Proof store backend: memory, file or redis")
	rootCmd.PersistentFlags().String("path", "", "Directory for the file store (default .proofline/proofs)")
	rootCmd.PersistentFlags().String("key-file", "", "File holding a 32-byte key; encrypts the file store at rest")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database for the redis store")
}

// newStore builds the proof store selected by the persistent flags.
func newStore(cmd *cobra.Command) (ports.ProofStore, error) {
	backend, _ := cmd.Flags().GetString("store")
	switch backend {
	case "memory":
		return memory.NewStore(), nil
	case "file":
		path, _ := cmd.Flags().GetString("path")
		keyFile, _ := cmd.Flags().GetString("key-file")
		if keyFile == "" {
			return file.New(path), nil
		}
		key, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("key file must hold exactly 32 bytes, got %d", len(key))
		}
		return file.New(path, file.WithEncryption(file.EncryptionConfig{ActiveKey: key})), nil
	case "redis":
		addr, _ := cmd.Flags().GetString("redis-addr")
		db, _ := cmd.Flags().GetInt("redis-db")
		return redis.New(addr, "", db), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// newEngine builds the engine over the selected store.
func newEngine(cmd *cobra.Command, opts ...proofline.Option) (*proofline.Engine, error) {
	store, err := newStore(cmd)
	if err != nil {
		return nil, err
	}
	return proofline.New(append([]proofline.Option{proofline.WithStore(store)}, opts...)...)
}
