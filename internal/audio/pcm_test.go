package audio

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestFloat32PCM16RoundTrip(t *testing.T) {
	in := []float32{0, 0.5, -0.5, 0.25, -1}
	got := PCM16ToFloat32(Float32ToPCM16(in))
	if len(got) != len(in) {
		t.Fatalf("round trip length %d, want %d", len(got), len(in))
	}
	for i := range in {
		diff := got[i] - in[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > 1.0/32768 {
			t.Errorf("sample %d: got %f, want %f", i, got[i], in[i])
		}
	}
}

func TestFloat32ToPCM16Clamps(t *testing.T) {
	pcm := Float32ToPCM16([]float32{2.0, -2.0})
	hi := int16(binary.LittleEndian.Uint16(pcm[0:2]))
	lo := int16(binary.LittleEndian.Uint16(pcm[2:4]))
	if hi != 32767 {
		t.Errorf("over-range sample = %d, want 32767", hi)
	}
	if lo != -32768 {
		t.Errorf("under-range sample = %d, want -32768", lo)
	}
}

func TestPCM16ToFloat32DropsOddByte(t *testing.T) {
	if got := PCM16ToFloat32([]byte{0, 0, 0x7f}); len(got) != 1 {
		t.Fatalf("got %d samples, want 1", len(got))
	}
}

func TestFrameRoundTrip(t *testing.T) {
	pcm := []byte{1, 2, 3, 4, 250}
	decoded, err := DecodeFrame(EncodeFrame(pcm))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != string(pcm) {
		t.Fatalf("round trip mismatch: %v", decoded)
	}
	if _, err := DecodeFrame("not base64!!"); err == nil {
		t.Fatal("expected error for malformed frame")
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		pcmLen     int
		sampleRate int
		want       time.Duration
	}{
		{960, 24000, 20 * time.Millisecond},  // 480 samples at 24k
		{320, 16000, 10 * time.Millisecond},  // 160 samples at 16k
		{48000, 24000, time.Second},          // one full second
		{0, 24000, 0},
		{960, 0, 0}, // guard against a zero rate
	}
	for _, tc := range cases {
		if got := Duration(tc.pcmLen, tc.sampleRate); got != tc.want {
			t.Errorf("Duration(%d, %d) = %v, want %v", tc.pcmLen, tc.sampleRate, got, tc.want)
		}
	}
}

func TestWrapWAVHeader(t *testing.T) {
	pcm := make([]byte, 960)
	wav := WrapWAV(pcm, PlaybackSampleRate)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("wav length %d, want %d", len(wav), 44+len(pcm))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE markers")
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("chunk size = %d, want %d", got, 36+len(pcm))
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != PlaybackSampleRate {
		t.Errorf("sample rate = %d, want %d", got, PlaybackSampleRate)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != PlaybackSampleRate*2 {
		t.Errorf("byte rate = %d, want %d", got, PlaybackSampleRate*2)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != BitsPerSample {
		t.Errorf("bits per sample = %d, want %d", got, BitsPerSample)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data size = %d, want %d", got, len(pcm))
	}
}

func TestWrapWAVEmpty(t *testing.T) {
	wav := WrapWAV(nil, PlaybackSampleRate)
	if len(wav) != 44 {
		t.Fatalf("empty wav length %d, want 44", len(wav))
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != 0 {
		t.Errorf("data size = %d, want 0", got)
	}
}
