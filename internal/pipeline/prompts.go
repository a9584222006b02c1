package pipeline

import (
	"strings"

	"github.com/Tarunp72/SMART-SDLC/internal/domain"
)

func requirementsPrompt(documentText string, instructions string) string {
	var builder strings.Builder
	builder.WriteString("You are an expert business analyst. Carefully read the following software requirements document. ")
	builder.WriteString("Extract all functional and non-functional requirements, and classify them clearly. ")
	builder.WriteString("If the user provides additional instructions, follow them.\n\n")
	builder.WriteString("Document Content:\n")
	builder.WriteString(documentText)
	builder.WriteString("\n")
	if strings.TrimSpace(instructions) != "" {
		builder.WriteString("\nAdditional user instructions: ")
		builder.WriteString(instructions)
		builder.WriteString("\n")
	}
	builder.WriteString("\n\nReturn the requirements as a markdown bullet list, grouped by 'Functional Requirements' and 'Non-Functional Requirements' if possible.")
	return builder.String()
}

func designPrompt(prompt string, designType string) string {
	return "You are a senior software architect. Based on the following project description, generate a concise and clear " +
		strings.ToLower(designType) + ". Use best practices for modern software design. " +
		"If the user requests a UML diagram, provide it in PlantUML text format. " +
		"If a summary is requested, focus on key components and interactions.\n\n" +
		"Project Description:\n" + prompt + "\n"
}

func codePrompt(prompt string, language domain.Language) string {
	return "You are an experienced software engineer. Write clean, well-structured " + string(language) +
		" code to implement the following requirement. Include comments and follow best practices. " +
		"Only output the code, no explanations.\n\n" +
		"Requirement:\n" + prompt + "\n"
}

func explainPrompt(code string, language domain.Language) string {
	return "You are a senior developer. Explain in detail what the following " + string(language) +
		" code does, including its purpose, logic, and any important functions or classes. " +
		"Structure your explanation for someone with intermediate programming knowledge.\n\n" +
		"Code:\n" + code + "\n"
}

func testsPrompt(code string, language domain.Language) string {
	return "You are a software test engineer. Generate comprehensive unit test cases in " + string(language) +
		" for the following code. Use best practices for test structure and naming. " +
		"Only output the test code.\n\n" +
		"Code to test:\n" + code + "\n"
}

func fixPrompt(code string, language domain.Language) string {
	return "You are a code reviewer. The following " + string(language) +
		" code contains one or more bugs. Identify and fix all issues. " +
		"Output the corrected code first, then provide a brief explanation of the changes.\n\n" +
		"Buggy code:\n" + code + "\n\n\n" +
		"Format your response as:\n[Corrected Code]\n" + explanationMarker + " [Your explanation here]"
}

func chatPrompt(message string, history []string) string {
	return "You are a helpful and knowledgeable AI assistant for software development projects. " +
		"Answer the user's question clearly and concisely. " +
		"If the question is about SDLC, programming, design, testing, or best practices, provide practical advice and examples when possible.\n\n" +
		"Conversation history:\n" + strings.Join(history, "\n") +
		"\nUser: " + message + "\nAI:"
}
