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
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/worldcoin/idkit-go/bridge"
	"github.com/worldcoin/idkit-go/config"
	"github.com/worldcoin/idkit-go/constraint"
	"github.com/worldcoin/idkit-go/credential"
	"github.com/worldcoin/idkit-go/proofrequest"
	"github.com/worldcoin/idkit-go/rpsig"
)

var (
	verifyAppID             string
	verifyAction            string
	verifyActionDescription string
	verifyCredential        string
	verifyKeyHex            string
	verifyBridgeURL         string
	verifyWaitTimeout       time.Duration
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Build a signed proof request, open a bridge session and wait for a proof",
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyAppID, "app-id", "", "World ID application ID (required)")
	verifyCmd.Flags().StringVar(&verifyAction, "action", "", "action identifier (required)")
	verifyCmd.Flags().StringVar(&verifyActionDescription, "action-description", "", "human readable action description")
	verifyCmd.Flags().StringVar(&verifyCredential, "credential", "orb", "required credential kind (orb, face, document, device, secure_document)")
	verifyCmd.Flags().StringVar(&verifyKeyHex, "signing-key", "", "hex-encoded RP signing key; a fresh one is generated when empty")
	verifyCmd.Flags().StringVar(&verifyBridgeURL, "bridge-url", bridge.DefaultBaseURL, "bridge base URL")
	verifyCmd.Flags().DurationVar(&verifyWaitTimeout, "timeout", bridge.DefaultWaitTimeout, "how long to wait for a proof")

	_ = verifyCmd.MarkFlagRequired("app-id")
	_ = verifyCmd.MarkFlagRequired("action")
}

// verifySettings are the runtime parameters runVerify threads into the
// bridge and signing calls, resolved from CLI flags and the loaded config.
type verifySettings struct {
	bridgeURL    string
	waitTimeout  time.Duration
	pollInterval time.Duration
	httpTimeout  time.Duration
	signingTTL   time.Duration
}

// resolveVerifySettings applies cfg's values on top of the flag defaults,
// except for bridge-url and timeout, where an explicitly set flag always
// wins over the config. cfg may be nil, in which case the flag values and
// the library's built-in defaults are used unchanged.
func resolveVerifySettings(cfg *config.Config, bridgeURLChanged, timeoutChanged bool, flagBridgeURL string, flagWaitTimeout time.Duration) verifySettings {
	s := verifySettings{
		bridgeURL:    flagBridgeURL,
		waitTimeout:  flagWaitTimeout,
		signingTTL:   rpsig.DefaultTTL,
		pollInterval: bridge.DefaultPollInterval,
		httpTimeout:  10 * time.Second,
	}

	if cfg == nil {
		return s
	}
	if cfg.Bridge != nil {
		if !bridgeURLChanged {
			s.bridgeURL = cfg.Bridge.BaseURL
		}
		if !timeoutChanged {
			s.waitTimeout = cfg.Bridge.DefaultWait
		}
		if cfg.Bridge.PollInterval > 0 {
			s.pollInterval = cfg.Bridge.PollInterval
		}
		if cfg.Bridge.HTTPTimeout > 0 {
			s.httpTimeout = cfg.Bridge.HTTPTimeout
		}
	}
	if cfg.Signing != nil && cfg.Signing.DefaultTTL > 0 {
		s.signingTTL = cfg.Signing.DefaultTTL
	}
	return s
}

func runVerify(cmd *cobra.Command, args []string) error {
	kind := credential.Kind(verifyCredential)
	if !kind.Valid() {
		return fmt.Errorf("unsupported credential kind: %s", verifyCredential)
	}

	settings := resolveVerifySettings(appConfig,
		cmd.Flags().Changed("bridge-url"), cmd.Flags().Changed("timeout"),
		verifyBridgeURL, verifyWaitTimeout)

	key, err := loadOrGenerateSigningKey(verifyKeyHex)
	if err != nil {
		return err
	}

	rpContext, err := rpsig.Sign(key, "rp_"+verifyAppID, verifyAction, settings.signingTTL)
	if err != nil {
		return fmt.Errorf("signing RP context: %w", err)
	}

	tree := constraint.Item(constraint.Request{Kind: kind})

	envelope, err := proofrequest.Build(proofrequest.Input{
		AppID:              verifyAppID,
		Action:             verifyAction,
		ActionDescription:  verifyActionDescription,
		Tree:               tree,
		RPContext:          rpContext,
		OPRFPublicKey:      hex.EncodeToString(key.PublicKeyUncompressed()),
		LegacyVerification: verifyCredential,
	})
	if err != nil {
		return fmt.Errorf("building proof request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), settings.waitTimeout+30*time.Second)
	defer cancel()

	httpClient := &http.Client{Timeout: settings.httpTimeout}

	sess, err := bridge.Create(ctx, httpClient, settings.bridgeURL, verifyAppID, envelope)
	if err != nil {
		return fmt.Errorf("creating bridge session: %w", err)
	}

	fmt.Fprintf(os.Stderr, "scan to verify: %s\n", sess.ConnectURL())

	status, err := sess.WaitForProof(ctx, settings.pollInterval, settings.waitTimeout)
	if err != nil {
		return fmt.Errorf("waiting for proof: %w", err)
	}
	if status != bridge.StatusConfirmed {
		return fmt.Errorf("verification failed: %s", sess.FailureReason())
	}

	out, err := json.MarshalIndent(sess.Result(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func loadOrGenerateSigningKey(hexKey string) (*rpsig.SigningKey, error) {
	if hexKey == "" {
		return rpsig.GenerateSigningKey()
	}
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding signing key: %w", err)
	}
	return rpsig.NewSigningKeyFromBytes(raw)
}
