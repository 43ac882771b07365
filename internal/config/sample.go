package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# HumanizePro configuration
version: "1.0"

ai:
  # Model backend: gemini, openai or ollama
  provider: gemini
  model: gemini-2.5-pro
  # Leave empty for the provider's public endpoint. For openai this may
  # point at any OpenAI-compatible server.
  endpoint: ""
  # Prefer HUMANIZEPRO_AI_API_KEY, API_KEY or GEMINI_API_KEY / OPENAI_API_KEY
  api_key: ""
  timeout: 120s
  # 0 keeps the provider default
  temperature: 0
  max_tokens: 0

session:
  # English or Arabic
  language: English
  # Academic, Casual, Formal or Creative
  tone: Casual
  # dark or light
  theme: dark
  # When true, the TUI accepts analyze/humanize while a request is in
  # flight and drops the result of any request superseded by a newer one.
  # When false, both actions are disabled until the current request settles.
  discard_stale: false

analysis:
  # What to do with percentages outside [0, 100]: passthrough, reject or clamp
  range_policy: passthrough

server:
  address: ":8080"
  read_timeout: 15s
  write_timeout: 150s
  shutdown_timeout: 10s
  max_body_bytes: 1048576
  allowed_origins:
    - "*"
  rate_limit:
    enabled: true
    requests_per_minute: 30
    burst: 10

output:
  # text, json, markdown or csv
  default_format: text
  # auto, always or never
  color_mode: auto
  verbose: false
  # TUI debug log, written only when verbose
  log_file: ~/.cache/humanizepro/tui.log
`
}

// MinimalSampleConfig returns a configuration with only the essentials
func MinimalSampleConfig() string {
	return `version: "1.0"
ai:
  provider: gemini
  model: gemini-2.5-pro
session:
  language: English
  tone: Casual
`
}
