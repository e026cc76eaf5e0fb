// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldcoin/idkit-go/rpsig"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new RP signing key",
	Long: `Generate a new secp256k1 signing key used to authenticate proof
requests to World ID authenticators. The private key is printed as hex;
treat it like any other credential and never commit it.`,
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(cmd *cobra.Command, args []string) error {
	key, err := rpsig.GenerateSigningKey()
	if err != nil {
		return fmt.Errorf("generating signing key: %w", err)
	}

	fmt.Printf("private_key: %s\n", hex.EncodeToString(key.Bytes()))
	fmt.Printf("public_key:  %s\n", hex.EncodeToString(key.PublicKeyUncompressed()))
	return nil
}
