// Copyright 2024-2025 CardinalHQ, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/statecache/pkg/datasource"
)

func newGetCommand(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := p.decode(args[0])
			if err != nil {
				return err
			}
			return p.withStore(cmd, nil, func(ds datasource.DataSource) error {
				value, found, err := ds.Get(key)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("%s: %w", args[0], errNotFound)
				}
				fmt.Fprintln(cmd.OutOrStdout(), p.encode(value))
				return nil
			})
		},
	}
}

func newPutCommand(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "put KEY VALUE",
		Short: "Store a value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := p.decode(args[0])
			if err != nil {
				return err
			}
			value, err := p.decode(args[1])
			if err != nil {
				return err
			}
			return p.withStore(cmd, nil, func(ds datasource.DataSource) error {
				return ds.Put(key, value)
			})
		},
	}
}

func newDeleteCommand(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := p.decode(args[0])
			if err != nil {
				return err
			}
			return p.withStore(cmd, nil, func(ds datasource.DataSource) error {
				return ds.Delete(key)
			})
		},
	}
}

func newKeysCommand(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List every key, sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.withStore(cmd, nil, func(ds datasource.DataSource) error {
				keys, err := ds.Keys()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, k := range keys {
					fmt.Fprintln(out, p.encode(k))
				}
				return nil
			})
		},
	}
}
