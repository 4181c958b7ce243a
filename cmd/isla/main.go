// isla - ISLA codec round-trip inspector
//
// Usage:
//
//	isla fmt [file]      Re-emit an ISLA text document in canonical form
//	isla tobin [file]    Convert ISLA text to ISLA binary (stdout)
//	isla totext [file]   Convert ISLA binary to ISLA text
//	isla dump [file]     Decode (text or binary, by magic) and print the
//	                     debug rendering of the value tree
//	isla version         Print version info
//
// If no file is given, reads from stdin. The binary-to-text conversion
// assumes leaf payloads and map keys are UTF-8; arbitrary bytes pass
// through unchecked.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Neumenon/isla/isla"
)

const libVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "version" {
		fmt.Printf("isla %s (text format ISLA1, binary format ISLAb v1)\n", libVersion)
		return
	}

	data := readInput(os.Args[2:])

	switch cmd {
	case "fmt":
		v, err := isla.DecodeText(string(data))
		if err != nil {
			fatal("decode text: %v", err)
		}
		out, err := isla.EncodeText(v)
		if err != nil {
			fatal("encode text: %v", err)
		}
		fmt.Print(out)

	case "tobin":
		v, err := isla.DecodeText(string(data))
		if err != nil {
			fatal("decode text: %v", err)
		}
		bv, err := textToBin(v)
		if err != nil {
			fatal("convert: %v", err)
		}
		out, err := isla.EncodeBinary(bv)
		if err != nil {
			fatal("encode binary: %v", err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			fatal("write: %v", err)
		}

	case "totext":
		bv, err := isla.DecodeBinary(data)
		if err != nil {
			fatal("decode binary: %v", err)
		}
		out, err := isla.EncodeText(binToText(bv))
		if err != nil {
			fatal("encode text: %v", err)
		}
		fmt.Print(out)

	case "dump":
		if strings.HasPrefix(string(data), "ISLAb") {
			bv, err := isla.DecodeBinary(data)
			if err != nil {
				fatal("decode binary: %v", err)
			}
			fmt.Println(bv.String())
			return
		}
		v, err := isla.DecodeText(string(data))
		if err != nil {
			fatal("decode text: %v", err)
		}
		fmt.Println(v.String())

	default:
		fmt.Fprintf(os.Stderr, "isla: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

// textToBin maps a text value tree onto the binary model. The text-only
// none sentinel has no binary counterpart and becomes an empty leaf.
func textToBin(v isla.TextValue) (isla.BinValue, error) {
	switch v.Type() {
	case isla.KindLeaf:
		s, err := v.AsLeaf()
		if err != nil {
			return isla.BinValue{}, err
		}
		return isla.NewBinLeaf([]byte(s)), nil
	case isla.KindList:
		l, err := v.AsList()
		if err != nil {
			return isla.BinValue{}, err
		}
		items := make([]isla.BinValue, len(l))
		for i, e := range l {
			items[i], err = textToBin(e)
			if err != nil {
				return isla.BinValue{}, err
			}
		}
		return isla.NewBinList(items...), nil
	case isla.KindMap:
		m, err := v.AsMap()
		if err != nil {
			return isla.BinValue{}, err
		}
		out := isla.NewBinMap()
		for _, e := range m {
			bv, err := textToBin(e.Value)
			if err != nil {
				return isla.BinValue{}, err
			}
			out.SetKey([]byte(e.Key), bv)
		}
		return out, nil
	default:
		return isla.NewBinLeaf(nil), nil
	}
}

// binToText maps a binary value tree onto the text model, interpreting
// leaves and keys as UTF-8.
func binToText(v isla.BinValue) isla.TextValue {
	switch v.Type() {
	case isla.KindLeaf:
		return isla.NewTextLeaf(string(v.AsLeafOrNull()))
	case isla.KindList:
		l := v.AsListOrNull()
		items := make([]isla.TextValue, len(l))
		for i, e := range l {
			items[i] = binToText(e)
		}
		return isla.NewTextList(items...)
	default:
		out := isla.NewTextMap()
		for _, e := range v.AsMapOrNull() {
			out.SetKey(string(e.Key), binToText(e.Value))
		}
		return out
	}
}

func readInput(args []string) []byte {
	var r io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	return data
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `isla - ISLA codec round-trip inspector

Usage:
  isla fmt [file]      Re-emit an ISLA text document in canonical form
  isla tobin [file]    Convert ISLA text to ISLA binary (stdout)
  isla totext [file]   Convert ISLA binary to ISLA text
  isla dump [file]     Decode (text or binary) and print the value tree
  isla version         Print version info

If no file is given, reads from stdin.`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "isla: "+format+"\n", args...)
	os.Exit(1)
}
