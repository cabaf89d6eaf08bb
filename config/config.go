// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config loads JSON-driven codec parameters: k, n, field width,
// kernel selection and the optional stats CSV log.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/xtaci/vfec/gf"
)

// Params is the on-disk shape of a codec configuration. SnmpLog and
// SnmpPeriod feed fecstat.Logger: the CSV snapshot path (filename part
// is a time format) and the snapshot interval in seconds.
type Params struct {
	K          int    `json:"k"`
	N          int    `json:"n"`
	FieldBits  int    `json:"fieldbits"`
	Kernel     string `json:"kernel"` // "auto", "scalar", or "simd"
	SnmpLog    string `json:"snmplog"`
	SnmpPeriod int    `json:"snmpperiod"`
}

// ResolveKernel maps the Kernel string field to a gf.Kernel value,
// defaulting to gf.KernelAuto for an empty or unrecognized string.
func (p *Params) ResolveKernel() gf.Kernel {
	switch p.Kernel {
	case "scalar":
		return gf.KernelScalar
	case "simd":
		return gf.KernelSIMD
	default:
		return gf.KernelAuto
	}
}

// Load reads and JSON-decodes a Params from path.
func Load(path string) (*Params, error) {
	var p Params
	if err := ParseJSON(&p, path); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseJSON decodes the JSON file at path into p in place.
func ParseJSON(p *Params, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "config: open %s", path)
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(p)
}
