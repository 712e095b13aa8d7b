package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// maxClipLength bounds custom clips; reactions are short effects.
const maxClipLength = 2 * time.Second

// Clip is rendered 16-bit little-endian stereo PCM at 44.1 kHz, ready for
// the output device.
type Clip struct {
	pcm []byte
}

// Duration is the playback length of the clip.
func (c Clip) Duration() time.Duration {
	frames := len(c.pcm) / (channelCount * bitDepth)
	return sampleRate.D(frames)
}

// Peak returns the largest absolute sample value in [0, 1].
func (c Clip) Peak() float64 {
	var peak float64
	for i := 0; i+1 < len(c.pcm); i += 2 {
		v := math.Abs(float64(int16(binary.LittleEndian.Uint16(c.pcm[i:]))) / 32767)
		peak = max(peak, v)
	}
	return peak
}

// Render drains s into a Clip.
func Render(s beep.Streamer) Clip {
	var pcm []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for ch := range channelCount {
				pcm = binary.LittleEndian.AppendUint16(pcm, uint16(toInt16(frame[ch])))
			}
		}
		if !ok || n == 0 {
			return Clip{pcm: pcm}
		}
	}
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

type decoder func(*os.File) ([][2]float64, int, error)

var clipDecoders = map[string]decoder{
	".mp3":  decodeMP3,
	".wav":  decodeWAV,
	".flac": decodeFLAC,
	".ogg":  decodeOGG,
}

// IsSupportedExt reports whether LoadClip can decode files with extension ext.
func IsSupportedExt(ext string) bool {
	_, ok := clipDecoders[strings.ToLower(ext)]
	return ok
}

// SupportedExtsList returns a human-readable list of the clip formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg"
}

// LoadClip decodes an mp3, wav, flac or ogg file and converts it to the
// output format, keeping at most the first two seconds.
func LoadClip(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := clipDecoders[ext]
	if !ok {
		return Clip{}, fmt.Errorf("unsupported format: %s (supported: %s)", ext, SupportedExtsList())
	}
	frames, rate, err := decode(f)
	if err != nil {
		return Clip{}, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	if rate <= 0 {
		return Clip{}, fmt.Errorf("decoding %s: invalid sample rate %d", filepath.Base(path), rate)
	}

	var s beep.Streamer = &frameStreamer{frames: frames}
	if src := beep.SampleRate(rate); src != sampleRate {
		s = beep.Resample(4, src, sampleRate, s)
	}
	return Render(beep.Take(sampleRate.N(maxClipLength), s)), nil
}

// frameStreamer plays back decoded frames.
type frameStreamer struct {
	frames [][2]float64
	pos    int
}

func (s *frameStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.frames) {
		return 0, false
	}
	n = copy(samples, s.frames[s.pos:])
	s.pos += n
	return n, true
}

func (s *frameStreamer) Err() error { return nil }

// appendFrame folds any channel layout into stereo: mono is duplicated,
// extra channels are dropped.
func appendFrame(frames [][2]float64, samples []float64) [][2]float64 {
	switch len(samples) {
	case 0:
		return frames
	case 1:
		return append(frames, [2]float64{samples[0], samples[0]})
	default:
		return append(frames, [2]float64{samples[0], samples[1]})
	}
}

// go-mp3 always produces 16-bit stereo.
func decodeMP3(f *os.File) ([][2]float64, int, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, err
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, err
	}
	frames := make([][2]float64, 0, len(raw)/4)
	for i := 0; i+3 < len(raw); i += 4 {
		l := float64(int16(binary.LittleEndian.Uint16(raw[i:]))) / 32768
		r := float64(int16(binary.LittleEndian.Uint16(raw[i+2:]))) / 32768
		frames = append(frames, [2]float64{l, r})
	}
	return frames, dec.SampleRate(), nil
}

func decodeWAV(f *os.File) ([][2]float64, int, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, 0, errors.New("WAV file has no channels")
	}
	// 8-bit WAV is unsigned, wider depths are signed.
	scale := math.Pow(2, float64(buf.SourceBitDepth-1))
	offset := 0.0
	if buf.SourceBitDepth == 8 {
		offset = 128
	}

	frames := make([][2]float64, 0, len(buf.Data)/channels)
	sample := make([]float64, channels)
	for i := 0; i+channels <= len(buf.Data); i += channels {
		for ch := range channels {
			sample[ch] = (float64(buf.Data[i+ch]) - offset) / scale
		}
		frames = appendFrame(frames, sample)
	}
	return frames, buf.Format.SampleRate, nil
}

func decodeFLAC(f *os.File) ([][2]float64, int, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, 0, err
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	scale := math.Pow(2, float64(info.BitsPerSample-1))

	var frames [][2]float64
	sample := make([]float64, channels)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		for i := range int(frame.Subframes[0].NSamples) {
			for ch := range channels {
				sample[ch] = float64(frame.Subframes[ch].Samples[i]) / scale
			}
			frames = appendFrame(frames, sample)
		}
		if sampleRate.D(len(frames)) > maxClipLength*4 {
			break
		}
	}
	return frames, int(info.SampleRate), nil
}

func decodeOGG(f *os.File) ([][2]float64, int, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, 0, err
	}
	channels := reader.Channels()
	if channels <= 0 {
		return nil, 0, errors.New("ogg stream has no channels")
	}

	var frames [][2]float64
	buf := make([]float32, 4096*channels)
	sample := make([]float64, channels)
	for {
		n, err := reader.Read(buf)
		for i := 0; i+channels <= n; i += channels {
			for ch := range channels {
				sample[ch] = float64(buf[i+ch])
			}
			frames = appendFrame(frames, sample)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
	}
	return frames, reader.SampleRate(), nil
}
