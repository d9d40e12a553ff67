package rubric

// Default returns the built-in TensorFlow interview rubric. Used when no
// rubric file is configured.
func Default() Store {
	s, err := NewStore(defaultEntries)
	if err != nil {
		// defaultEntries is a compile-time constant set; a failure here is
		// a programming error.
		panic(err)
	}
	return s
}

var defaultEntries = []Entry{
	{
		QuestionID: 1,
		Question:   "Can you share any specific challenges you faced while working on certification and how you overcame them?",
		CriteriaText: `- Score 4 (Comprehensive): Provides a detailed description of specific challenges encountered AND offers clear explanations of how each was overcome. Demonstrates strong problem-solving skills.
- Score 3 (Specific): Describes at least one specific challenge with a basic explanation of the solution.
- Score 2 (General): Mentions challenges generally (e.g., "it was hard") without details or clear solutions.
- Score 1 (Minimal): Vague response or lacks insight.
- Score 0 (Unanswered): No relevant answer.`,
	},
	{
		QuestionID: 2,
		Question:   "Can you describe your experience with transfer learning in TensorFlow? How did it benefit your projects?",
		CriteriaText: `- Score 4 (Comprehensive): Detailed description of personal experience AND specific examples of projects explaining benefits (speed/accuracy) clearly.
- Score 3 (Specific): Describes personal experience and mentions a project, but explanation of benefits is basic.
- Score 2 (General): Mentions transfer learning generally without specific project details.
- Score 1 (Minimal): Minimal details or vague understanding.
- Score 0 (Unanswered): No relevant answer.`,
	},
	{
		QuestionID: 3,
		Question:   "Describe a complex TensorFlow model you have built and the steps you took to ensure its accuracy and efficiency.",
		CriteriaText: `- Score 4 (Comprehensive): Specific details on model architecture (layers/features) AND clear explanation of steps for accuracy/efficiency (preprocessing, regularization, tuning).
- Score 3 (Specific): Provides details on architecture but steps for accuracy/efficiency are basic or lack depth.
- Score 2 (General): Mentions building a model in general terms without technical specifics.
- Score 1 (Minimal): Vague response lacking specific terminology.
- Score 0 (Unanswered): No relevant answer.`,
	},
	{
		QuestionID: 4,
		Question:   "Explain how to implement dropout in a TensorFlow model and the effect it has on training.",
		CriteriaText: `- Score 4 (Comprehensive): Detailed explanation of implementation (e.g., code/layers) AND clear explanation of effect (preventing overfitting/random deactivation).
- Score 3 (Specific): Explains implementation with some specifics but description of effect is general.
- Score 2 (General): Describes general effect (e.g., "good for training") without implementation details.
- Score 1 (Minimal): Vague or incorrect explanation.
- Score 0 (Unanswered): No relevant answer.`,
	},
	{
		QuestionID: 5,
		Question:   "Describe the process of building a convolutional neural network (CNN) using TensorFlow for image classification.",
		CriteriaText: `- Score 4 (Comprehensive): Step-by-step description covering key components: Preprocessing -> Layers (Conv/Pool) -> Compile -> Train -> Evaluate.
- Score 3 (Specific): Includes key steps (preprocessing, architecture, training) but lacks comprehensive elaboration.
- Score 2 (General): General mention of CNN components without a clear process flow.
- Score 1 (Minimal): Vague understanding of the process.
- Score 0 (Unanswered): No relevant answer.`,
	},
}
