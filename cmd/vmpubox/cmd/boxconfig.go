/*
Copyright © 2025 armvmpu authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/armvmpu/vmpu"
	"github.com/spf13/cobra"
)

var (
	boxConfigDecode bool
	boxConfigOut    string
)

func init() {
	rootCmd.AddCommand(boxConfigCmd)
	boxConfigCmd.Flags().BoolVar(&boxConfigDecode, "decode", false, "decode a binary box-config blob to JSON (default: encode JSON to a binary blob)")
	boxConfigCmd.Flags().StringVarP(&boxConfigOut, "out", "o", "", "write output to this file instead of stdout")
}

var boxConfigCmd = &cobra.Command{
	Use:   "boxconfig [FILE]",
	Short: "Encode a JSON BoxConfig to its packed wire format, or decode a blob back to JSON",
	Long: `boxconfig round-trips the UvBoxConfig wire format this core parses at
box-load time.

Encode (default): read a JSON-encoded BoxConfig from FILE (or stdin) and
write the packed, 32-byte-aligned binary blob.

Decode (--decode): read a binary blob from FILE (or stdin) and write the
equivalent BoxConfig as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args)
		if err != nil {
			return err
		}

		var output []byte
		if boxConfigDecode {
			cfg, err := vmpu.DecodeBoxConfig(input)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			output, err = json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal: %w", err)
			}
			output = append(output, '\n')
		} else {
			var cfg vmpu.BoxConfig
			if err := json.Unmarshal(input, &cfg); err != nil {
				return fmt.Errorf("unmarshal: %w", err)
			}
			if cfg.Magic == 0 {
				cfg.Magic = vmpu.BoxConfigMagic
			}
			if cfg.Version == 0 {
				cfg.Version = vmpu.BoxConfigVersion
			}
			output = cfg.Encode()
		}

		return writeOutput(output)
	},
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func writeOutput(data []byte) error {
	if boxConfigOut == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(boxConfigOut, data, 0o644)
}
