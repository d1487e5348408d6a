package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-sfft/dsp/sfft"
)

var validate = validator.New()

// signalFile is the JSON encoding of a dense time-domain signal. Samples
// are [re, im] pairs in flattened order, axis 0 least significant.
type signalFile struct {
	Dims    int          `json:"dims" validate:"gte=1"`
	Width   int          `json:"width" validate:"gte=2"`
	Samples [][2]float64 `json:"samples" validate:"required"`
}

// coefficient is one entry of a spectrum file.
type coefficient struct {
	Index []int64 `yaml:"index" validate:"required,min=1"`
	Re    float64 `yaml:"re"`
	Im    float64 `yaml:"im"`
}

// spectrumFile is the YAML encoding of a sparse spectrum.
type spectrumFile struct {
	Dims         int           `yaml:"dims" validate:"gte=1"`
	Width        int           `yaml:"width" validate:"gte=2"`
	Coefficients []coefficient `yaml:"coefficients" validate:"dive"`
}

func (s *signalFile) domain() (sfft.Domain, error) {
	if err := validate.Struct(s); err != nil {
		return sfft.Domain{}, fmt.Errorf("invalid signal file: %w", err)
	}
	return sfft.NewDomain(s.Dims, s.Width)
}

func (s *signalFile) signal() (*sfft.DataSignal, error) {
	d, err := s.domain()
	if err != nil {
		return nil, err
	}
	values := make([]complex128, len(s.Samples))
	for i, v := range s.Samples {
		values[i] = complex(v[0], v[1])
	}
	return sfft.NewDataSignal(d, values)
}

func newSignalFile(d sfft.Domain, values []complex128) *signalFile {
	out := &signalFile{
		Dims:    d.Dims(),
		Width:   d.Width(),
		Samples: make([][2]float64, len(values)),
	}
	for i, v := range values {
		out.Samples[i] = [2]float64{real(v), imag(v)}
	}
	return out
}

func readSignal(r io.Reader) (*signalFile, error) {
	var s signalFile
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode signal: %w", err)
	}
	return &s, nil
}

func writeSignal(w io.Writer, s *signalFile) error {
	return json.NewEncoder(w).Encode(s)
}

func (s *spectrumFile) table() (sfft.Domain, *sfft.Table, error) {
	if err := validate.Struct(s); err != nil {
		return sfft.Domain{}, nil, fmt.Errorf("invalid spectrum file: %w", err)
	}
	d, err := sfft.NewDomain(s.Dims, s.Width)
	if err != nil {
		return sfft.Domain{}, nil, err
	}
	tab := sfft.NewTable()
	for _, c := range s.Coefficients {
		if len(c.Index) > d.Dims() {
			return sfft.Domain{}, nil, fmt.Errorf("index %v has more than %d coordinates", c.Index, d.Dims())
		}
		tab.Add(d.At(c.Index...), complex(c.Re, c.Im))
	}
	return d, tab, nil
}

func newSpectrumFile(d sfft.Domain, tab *sfft.Table) *spectrumFile {
	out := &spectrumFile{Dims: d.Dims(), Width: d.Width()}
	for _, f := range tab.Keys() {
		c, _ := tab.Get(f)
		out.Coefficients = append(out.Coefficients, coefficient{
			Index: f.Coords(),
			Re:    real(c),
			Im:    imag(c),
		})
	}
	return out
}

func readSpectrum(r io.Reader) (*spectrumFile, error) {
	var s spectrumFile
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode spectrum: %w", err)
	}
	return &s, nil
}

func writeSpectrum(w io.Writer, s *spectrumFile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// openInput opens path for reading; "-" selects fallback.
func openInput(path string, fallback io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(fallback), nil
	}
	return os.Open(path)
}

// createOutput creates path for writing; "" and "-" select fallback.
func createOutput(path string, fallback io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{fallback}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
