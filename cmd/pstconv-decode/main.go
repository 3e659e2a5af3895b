package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jtraulle/pstconv/pkg/pstconv"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pstconv-decode [hex]",
		Short: "Decode Outlook distribution-list and recurrence property blobs",
		Long: "pstconv-decode decodes the binary MAPI property blobs a PST export leaves opaque:\n" +
			"distribution-list membership records and appointment recurrence patterns.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pstconv.DecodeOptions{MemberCap: memberCap, Strict: strict}
			if len(args) == 0 {
				return runInteractive(opts)
			}
			return runDecode(opts, args[0])
		},
	}

	propertyKind string
	strict       bool
	memberCap    int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&propertyKind, "property", "auto",
		"property kind to decode: members, recurrence, or auto")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false,
		"treat a corrupt member-list header as an error instead of an empty list")
	rootCmd.PersistentFlags().IntVar(&memberCap, "max-members", 0,
		"member count sanity cap (0 for the default of 10000)")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive(opts pstconv.DecodeOptions) error {
	scanner := bufio.NewScanner(os.Stdin)
	logrus.Info("pstconv decode mode. Paste a hex property blob and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecode(opts, line); err != nil {
			logrus.WithError(err).Error("failed to decode blob")
		}
	}
	return scanner.Err()
}

func runDecode(opts pstconv.DecodeOptions, hexBlob string) error {
	var (
		result pstconv.Result
		err    error
	)
	if propertyKind == "auto" {
		result, err = pstconv.DecodeHex(hexBlob, opts)
	} else {
		result, err = decodeKind(propertyKind, hexBlob, opts)
	}
	if err != nil {
		return err
	}
	for _, d := range result.Diagnostics {
		logrus.WithField("member", d.Member).Warn(d.Msg)
	}
	fmt.Println(result.String())
	return nil
}

func decodeKind(kind, hexBlob string, opts pstconv.DecodeOptions) (pstconv.Result, error) {
	data, err := pstconv.DecodeHexBytes(hexBlob)
	if err != nil {
		return pstconv.Result{}, err
	}
	return pstconv.DecodeProperty(kind, data, opts)
}
