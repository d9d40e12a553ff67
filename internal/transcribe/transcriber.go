package transcribe

import "context"

// Transcriber turns an audio file into plain text. Consumers depend on
// this interface only; whether the backend is a local model or a cloud API
// is a wiring decision. An empty transcript is a valid result.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// contextPrompt biases the speech model toward the interview's technical
// vocabulary.
const contextPrompt = "Technical interview regarding Machine Learning, Data Science, TensorFlow, Keras, CNN, transfer learning, dropout, overfitting, Python programming, and model optimization."
