package domain

type TaskKind string

const (
	TaskAnalyzeRequirements TaskKind = "analyze-requirements"
	TaskGenerateDesign      TaskKind = "generate-design"
	TaskGenerateCode        TaskKind = "generate-code"
	TaskExplainCode         TaskKind = "explain-code"
	TaskGenerateTests       TaskKind = "generate-tests"
	TaskFixBug              TaskKind = "fix-bug"
	TaskChat                TaskKind = "chat"
)

// AllTasks lists every task kind in the order the endpoints are documented.
func AllTasks() []TaskKind {
	return []TaskKind{
		TaskAnalyzeRequirements,
		TaskGenerateDesign,
		TaskGenerateCode,
		TaskExplainCode,
		TaskGenerateTests,
		TaskFixBug,
		TaskChat,
	}
}

type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type RequirementAnalysisResponse struct {
	Requirements []string `json:"requirements"`
}

type RequirementImportRequest struct {
	DocumentID string `json:"document_id"`
	Prompt     string `json:"prompt"`
}

type DesignRequest struct {
	Prompt     string `json:"prompt"`
	DesignType string `json:"design_type"`
}

type DesignResponse struct {
	Design string `json:"design"`
}

type CodeGenerationRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

type CodeGenerationResponse struct {
	Code string `json:"code"`
}

// CodeRequest is shared by explain-code, generate-tests and fix-bug.
type CodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type CodeExplanationResponse struct {
	Explanation string `json:"explanation"`
}

type TestGenerationResponse struct {
	TestCases string `json:"test_cases"`
}

type BugFixResponse struct {
	FixedCode   string `json:"fixed_code"`
	Explanation string `json:"explanation"`
}

type ChatRequest struct {
	Message string   `json:"message"`
	History []string `json:"history"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ConnectorImportRequest struct {
	DocumentID string `json:"document_id"`
}

type ConnectorImportResponse struct {
	Connector string   `json:"connector"`
	Document  Document `json:"document"`
}

type ConnectorExportRequest struct {
	DocumentID string `json:"document_id"`
	Content    string `json:"content"`
	// Mode is "replace" (default) or "append".
	Mode string `json:"mode"`
}

type ConnectorExportResponse struct {
	Connector string `json:"connector"`
	Exported  bool   `json:"exported"`
}

type RuntimeCapabilities struct {
	RequestedBackend   string `json:"requestedBackend"`
	ActiveBackend      string `json:"activeBackend"`
	BackendFallback    bool   `json:"backendFallback"`
	RequestedConnector string `json:"requestedConnector"`
	ActiveConnector    string `json:"activeConnector"`
	ConnectorFallback  bool   `json:"connectorFallback"`
	ContextWindow      int    `json:"contextWindow"`
}

type FeatureFlags struct {
	DocumentImport bool `json:"documentImport"`
	DocumentExport bool `json:"documentExport"`
}

type CapabilitiesResponse struct {
	Runtime   RuntimeCapabilities `json:"runtime"`
	Features  FeatureFlags        `json:"features"`
	Tasks     []TaskKind          `json:"tasks"`
	Languages []Language          `json:"languages"`
}

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

type APIErrorResponse struct {
	Error APIError `json:"error"`
}
