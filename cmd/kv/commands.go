package kv

import (
	"fmt"
	"os"
	"strings"

	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/backend"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := util.NewKey(args[0])
			if err != nil {
				return err
			}
			if err := localStore.Set(key, store.Some([]byte(args[1]))); err != nil {
				return err
			} else {
				fmt.Println("set successfully")
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := util.NewKey(args[0])
			if err != nil {
				return err
			}
			resp, err := localStore.Get(key)
			if err != nil {
				return err
			}
			value, ok := resp.Unwrap()
			fmt.Printf("key=%s, found=%v, resp=%s\n", key.Name, ok, value)
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := util.NewKey(args[0])
			if err != nil {
				return err
			}
			if err := localStore.Set(key, store.None[[]byte]()); err != nil {
				return err
			} else {
				fmt.Println("delete successfully")
			}
			return nil
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Checks if a key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := util.NewKey(args[0])
			if err != nil {
				return err
			}
			found, err := localStore.Has(key)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, found=%t\n", key.Name, found)
			return nil
		},
	}
	clearCmd = &cobra.Command{
		Use:   "clear [kind...]",
		Short: "Removes all entries of the given backend kinds (all kinds if none given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := backend.AllKinds()
			if len(args) > 0 {
				kinds = kinds[:0]
				for _, arg := range args {
					kind, err := backend.ParseKind(arg)
					if err != nil {
						return err
					}
					kinds = append(kinds, kind)
				}
			}
			if err := localStore.RemoveAll(kinds...); err != nil {
				return err
			}
			fmt.Println("cleared successfully")
			return nil
		},
	}
	destroyCmd = &cobra.Command{
		Use:   "destroy",
		Short: "Wipes all backends and permanently shuts the store down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := localStore.Destroy(); err != nil {
				return err
			}
			fmt.Println("destroyed successfully")
			return nil
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Prints information about the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := localStore.Info()
			fmt.Printf("kinds=%s, observers=%d, destroyed=%t\n",
				strings.Join(info.Kinds, ","), info.Observers, info.Destroyed)

			if dump, _ := cmd.Flags().GetBool("metrics"); dump {
				fmt.Println()
				metrics.WritePrometheus(os.Stdout, true)
			}
			return nil
		},
	}
)

func init() {
	infoCmd.Flags().Bool("metrics", false, util.WrapString("Dump the process metrics in Prometheus exposition format"))
}
