package beep

var disabled bool

func Disable() { disabled = true }

const (
	sampleRate = 44100

	// Toggle click: high pitch, very short
	clickFreq   = 1200
	clickVolume = 0.5
	clickDecay  = 60

	// Error: low pitch double-beep
	errorFreq   = 350
	errorVolume = 0.6
	errorDecay  = 30
)
