// Package audio holds the PCM plumbing for the voice lab: sample
// conversion, base64 framing for the websocket, WAV packaging for the
// text-to-speech endpoint, and playback timing math.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"time"
)

const (
	// CaptureSampleRate is the microphone upload rate.
	CaptureSampleRate = 16000
	// PlaybackSampleRate is the rate of model speech output.
	PlaybackSampleRate = 24000

	BitsPerSample = 16
	Channels      = 1

	bytesPerSample = BitsPerSample / 8
)

// Float32ToPCM16 converts normalized samples to little-endian PCM16.
// Samples outside [-1, 1] are clamped rather than wrapped.
func Float32ToPCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*bytesPerSample)
	for i, s := range samples {
		v := float64(s) * 32768
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out
}

// PCM16ToFloat32 converts little-endian PCM16 back to normalized
// samples. A trailing odd byte is dropped.
func PCM16ToFloat32(data []byte) []float32 {
	n := len(data) / bytesPerSample
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		out[i] = float32(v) / 32768
	}
	return out
}

// EncodeFrame packs raw PCM bytes for transport inside a JSON message.
func EncodeFrame(pcm []byte) string {
	return base64.StdEncoding.EncodeToString(pcm)
}

// DecodeFrame unpacks a base64 audio frame.
func DecodeFrame(frame string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(frame)
}

// Duration reports how long a raw PCM16 mono buffer plays for at the
// given sample rate.
func Duration(pcmLen, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	samples := pcmLen / bytesPerSample
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}

// WrapWAV prefixes raw PCM16 mono data with a 44-byte RIFF header so
// browsers can play it directly.
func WrapWAV(pcm []byte, sampleRate int) []byte {
	dataLen := len(pcm)
	byteRate := sampleRate * Channels * bytesPerSample
	blockAlign := Channels * bytesPerSample

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataLen))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], Channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], BitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))

	return append(header, pcm...)
}
