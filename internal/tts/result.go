package tts

// RawAudio is uncontainerized PCM returned by a speech provider, with
// the parameters needed to wrap it in a playable file.
type RawAudio struct {
	PCM           []byte // raw samples, no header
	Channels      int    // number of channels
	SampleRate    int    // samples per second
	BitsPerSample int    // bit depth, multiple of 8
	Provider      string // the provider used (e.g., "openai")
}
