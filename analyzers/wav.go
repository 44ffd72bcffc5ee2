package analyzers

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// refLevelDB anchors the energy scale: mean amplitude at -30 dBFS (a
// typical speech level) maps to energy 0, quieter audio goes negative,
// louder positive. A 20 dB swing moves energy by one unit, so the
// classifier's +-0.5 thresholds sit 10 dB either side of nominal.
const refLevelDB = -30.0

// wavStats derives the heuristic's input features from a 16-bit PCM WAV
// file: dB-scaled loudness, zero crossing rate, and a spectral centroid
// proxy derived from the crossing rate (zcr * nyquist).
func wavStats(path string) (Features, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Features{}, err
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Features{}, fmt.Errorf("wav %s: not a RIFF/WAVE file", path)
	}

	var sampleRate uint32
	var bitsPerSample, audioFormat uint16
	var pcm []byte

	// Walk the chunk list for fmt and data.
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+size > len(data) {
			size = len(data) - body
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return Features{}, fmt.Errorf("wav %s: short fmt chunk", path)
			}
			audioFormat = binary.LittleEndian.Uint16(data[body : body+2])
			sampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			bitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
		case "data":
			pcm = data[body : body+size]
		}
		// chunks are word aligned
		off = body + size + size%2
	}

	if audioFormat != 1 || bitsPerSample != 16 {
		return Features{}, fmt.Errorf("wav %s: only 16-bit PCM is supported", path)
	}
	n := len(pcm) / 2
	if n == 0 {
		return Features{}, fmt.Errorf("wav %s: empty data chunk", path)
	}

	var sumAbs float64
	crossings := 0
	prev := int16(binary.LittleEndian.Uint16(pcm[0:2]))
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(pcm[2*i : 2*i+2]))
		v := float64(s) / 32768.0
		if v < 0 {
			sumAbs -= v
		} else {
			sumAbs += v
		}
		if i > 0 && ((prev >= 0) != (s >= 0)) {
			crossings++
		}
		prev = s
	}

	zcr := float64(crossings) / float64(n)
	// Floor the mean amplitude so digital silence stays finite.
	db := 20 * math.Log10(math.Max(sumAbs/float64(n), 1e-6))
	return Features{
		Energy:   (db - refLevelDB) / 20,
		Centroid: zcr * float64(sampleRate) / 2,
		ZCR:      zcr,
	}, nil
}
