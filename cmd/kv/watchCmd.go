package kv

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/spf13/cobra"
)

var (
	watchCmd = &cobra.Command{
		Use:   "watch [key]",
		Short: "Subscribes to the change stream of a key",
		Long: util.WrapString("Prints the current value of the key and every subsequent change " +
			"until interrupted (Ctrl-C) or until the store is destroyed."),
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
)

func runWatch(_ *cobra.Command, args []string) error {
	key, err := util.NewKey(args[0])
	if err != nil {
		return err
	}

	sub, err := localStore.Observe(key)
	if err != nil {
		return err
	}
	defer sub.Cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	for {
		select {
		case emission, ok := <-sub.C():
			if !ok {
				if err := sub.Err(); errors.Is(err, store.ErrStoreDestroyed) {
					fmt.Println("store destroyed, stopping watch")
					return nil
				} else if err != nil {
					return err
				}
				return nil
			}
			if value, present := emission.Unwrap(); present {
				fmt.Printf("key=%s, found=true, value=%s\n", key.Name, value)
			} else {
				fmt.Printf("key=%s, found=false\n", key.Name)
			}
		case <-interrupt:
			return nil
		}
	}
}
