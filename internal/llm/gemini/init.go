package gemini

import "jobsforce/api/internal/llm"

// Register Gemini provider on package import
func init() {
	llm.Register("gemini", func() (llm.Provider, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(config)
	})
}
