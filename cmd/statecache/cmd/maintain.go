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

type maintainer interface {
	Maintain() error
}

func newMaintainCommand(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "maintain",
		Short: "Run the backing store's space reclamation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the cache has nothing to reclaim; talk to the store directly
			if err := cmd.Flags().Set(flagCacheSize, "0"); err != nil {
				return err
			}
			return p.withStore(cmd, nil, func(ds datasource.DataSource) error {
				m, ok := ds.(maintainer)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: nothing to maintain\n", ds.Name())
					return nil
				}
				if err := m.Maintain(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: maintenance done\n", ds.Name())
				return nil
			})
		},
	}
}
