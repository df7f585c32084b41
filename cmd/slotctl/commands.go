/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/suparena/slotstore"
	"github.com/suparena/slotstore/datastore"
	"github.com/suparena/slotstore/errors"
)

// valueTypes lists the accepted --type values.
var valueTypes = []string{"string", "int", "double", "float", "bool", "bytes", "time", "strings", "json"}

func newGetCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(store datastore.Store, obs slotstore.Observer) error {
				out, err := getValue(store, obs, opts.typ, args[0])
				if err != nil {
					return err
				}
				cmd.Println(out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.typ, "type", "string", "Value type: "+strings.Join(valueTypes, ", "))
	return cmd
}

func newSetCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(store datastore.Store, obs slotstore.Observer) error {
				return setValue(store, obs, opts.typ, args[0], args[1])
			})
		},
	}
	cmd.Flags().StringVar(&opts.typ, "type", "string", "Value type: "+strings.Join(valueTypes, ", "))
	return cmd
}

func newRemoveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <key>",
		Aliases: []string{"remove"},
		Short:   "Remove the record stored under a key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(store datastore.Store, obs slotstore.Observer) error {
				slotstore.New[*string](args[0], nil, store, slotstore.WithObserver(obs)).Reset()
				return nil
			})
		},
	}
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored keys and the shape of their records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(store datastore.Store, _ slotstore.Observer) error {
				lister, ok := store.(datastore.Lister)
				if !ok {
					return errors.NewValidationError("backend", fmt.Sprintf("%s cannot list keys", opts.backend))
				}
				keys, err := lister.Keys()
				if err != nil {
					return err
				}
				for _, key := range keys {
					rec, ok := store.Object(key)
					if !ok {
						continue
					}
					cmd.Printf("%s\t%s\n", key, datastore.KindOf(rec))
				}
				return nil
			})
		},
	}
}

// getValue reads key through a slot of the named type and formats the result.
func getValue(store datastore.Store, obs slotstore.Observer, typ, key string) (string, error) {
	exists := slotstore.New[*string](key, nil, store).Exists()
	if !exists {
		return "", errors.NewNotFoundError("key", key)
	}

	opt := slotstore.WithObserver(obs)
	switch typ {
	case "string":
		return slotstore.New(key, "", store, opt).Get(), nil
	case "int":
		return strconv.FormatInt(slotstore.New[int64](key, 0, store, opt).Get(), 10), nil
	case "double":
		return strconv.FormatFloat(slotstore.New[float64](key, 0, store, opt).Get(), 'g', -1, 64), nil
	case "float":
		return strconv.FormatFloat(float64(slotstore.New[float32](key, 0, store, opt).Get()), 'g', -1, 32), nil
	case "bool":
		return strconv.FormatBool(slotstore.New(key, false, store, opt).Get()), nil
	case "bytes":
		return base64.StdEncoding.EncodeToString(slotstore.New[[]byte](key, nil, store, opt).Get()), nil
	case "time":
		t := slotstore.New(key, time.Time{}, store, opt).Get()
		return t.Format(time.RFC3339Nano), nil
	case "strings":
		return strings.Join(slotstore.New[[]string](key, nil, store, opt).Get(), ","), nil
	case "json":
		v := slotstore.New[any](key, nil, store, opt).Get()
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", unknownType(typ)
}

// setValue parses raw as the named type and writes it through a slot.
func setValue(store datastore.Store, obs slotstore.Observer, typ, key, raw string) error {
	opt := slotstore.WithObserver(obs)
	switch typ {
	case "string":
		slotstore.New(key, "", store, opt).Set(raw)
	case "int":
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errors.NewValidationError("value", err.Error())
		}
		slotstore.New[int64](key, 0, store, opt).Set(i)
	case "double":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.NewValidationError("value", err.Error())
		}
		slotstore.New[float64](key, 0, store, opt).Set(f)
	case "float":
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return errors.NewValidationError("value", err.Error())
		}
		slotstore.New[float32](key, 0, store, opt).Set(float32(f))
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.NewValidationError("value", err.Error())
		}
		slotstore.New(key, false, store, opt).Set(b)
	case "bytes":
		b, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return errors.NewValidationError("value", err.Error())
		}
		slotstore.New[[]byte](key, nil, store, opt).Set(b)
	case "time":
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return errors.NewValidationError("value", err.Error())
		}
		slotstore.New(key, time.Time{}, store, opt).Set(t)
	case "strings":
		var list []string
		if raw != "" {
			list = strings.Split(raw, ",")
		}
		slotstore.New[[]string](key, nil, store, opt).Set(list)
	case "json":
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return errors.NewValidationError("value", err.Error())
		}
		slotstore.New[any](key, nil, store, opt).Set(v)
	default:
		return unknownType(typ)
	}
	return nil
}

func unknownType(typ string) error {
	return errors.NewValidationError("type", fmt.Sprintf("unknown type %q, want one of %s", typ, strings.Join(valueTypes, ", ")))
}
