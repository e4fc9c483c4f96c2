//go:build !linux

package beep

// Feedback tones are only wired up for PulseAudio; elsewhere the Toggle Key
// flip is silent.

func Init() {}

func PlayClick() {}

func PlayError() {}
