package skinai

// chatRequest is the chat-completions payload of the vision endpoint.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// FaceReport is the structured contract of a facial analysis. Every
// field falls back to a neutral default when the section is missing
// from the model output; Recommendations always carries the raw text.
type FaceReport struct {
	SkinType        string
	Oiliness        string
	Pores           string
	Texture         string
	FineLines       string
	Spots           string
	Acne            string
	Sensitivity     string
	Recommendations string
}
