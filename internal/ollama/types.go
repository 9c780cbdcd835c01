package ollama

// Options holds the sampling parameters sent with a generate request.
type Options struct {
	// Temperature controls the randomness of the output.
	Temperature float64 `json:"temperature"`

	// NumPredict is the maximum number of tokens to generate.
	NumPredict int `json:"num_predict"`

	TopP float64 `json:"top_p"`
	TopK int     `json:"top_k"`
}

// GenerateRequest is the request body for the /api/generate endpoint.
type GenerateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

// GenerateResponse is the non-streaming response from /api/generate.
// A missing response field decodes to the empty string.
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// ModelInfo describes one locally available model.
type ModelInfo struct {
	Name  string `json:"name"`
	Model string `json:"model,omitempty"`
	Size  int64  `json:"size,omitempty"`
}

// TagsResponse is the response from the /api/tags endpoint.
type TagsResponse struct {
	Models []ModelInfo `json:"models"`
}
