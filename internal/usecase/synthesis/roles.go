package synthesis

// Role describes one completion stage of the synthesizer.
type Role struct {
	Name         string `yaml:"name"`
	Model        string `yaml:"model"`
	Instructions string `yaml:"instructions"`
}

// Default models for the two completion stages and the speech renderer.
const (
	DefaultAnswerModel    = "gpt-4o"
	DefaultDirectionModel = "gpt-4o-mini"
	DefaultSpeechModel    = "gpt-4o-mini-tts"
	DefaultVoice          = "coral"
)

// AnswerRole produces the spoken-style documentation answer.
func AnswerRole() Role {
	return Role{
		Name:  "answer",
		Model: DefaultAnswerModel,
		Instructions: `You are a helpful documentation assistant. Your task is to:
1. Analyze the provided documentation content
2. Answer the user's question clearly and concisely
3. Include relevant examples when available
4. Cite the source URLs when referencing specific content
5. Keep responses natural and conversational
6. Format your response in a way that's easy to speak out loud`,
	}
}

// DirectionRole turns the answer into voice delivery directions.
func DirectionRole() Role {
	return Role{
		Name:  "direction",
		Model: DefaultDirectionModel,
		Instructions: `You are a text-to-speech agent. Your task is to:
1. Convert the processed documentation response into natural speech
2. Maintain proper pacing and emphasis
3. Handle technical terms clearly
4. Keep the tone professional but friendly
5. Use appropriate pauses for better comprehension
6. Ensure the speech is clear and well-articulated`,
	}
}

// Voices supported by the speech renderer.
var Voices = []string{
	"alloy", "ash", "ballad", "coral", "echo",
	"fable", "onyx", "nova", "sage", "shimmer", "verse",
}

// ValidVoice reports whether name is a supported speech voice.
func ValidVoice(name string) bool {
	for _, v := range Voices {
		if v == name {
			return true
		}
	}
	return false
}
