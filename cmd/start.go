/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/run"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start liveness node",
	Long:  "Is used to start the liveness tracking node",
	Run: func(cmd *cobra.Command, args []string) {
		s := &common.Settings{}
		if err := viper.Unmarshal(s); err != nil {
			return
		}

		run.Start(s)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().Uint16P("port", "p", 9080, "Listening port")
	if err := viper.BindPFlag("Network.Port", startCmd.Flags().Lookup("port")); err != nil {
		println(err.Error())
	}

	viper.SetDefault("Network.MinPeers", 2)
	viper.SetDefault("Liveness.BlockDelta", 2000)
	viper.SetDefault("Liveness.SessionLength", 50)
	viper.SetDefault("Liveness.Me", -1)
}
