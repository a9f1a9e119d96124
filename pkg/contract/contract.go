// Package contract describes the two remote endpoints of a dynamic form, the
// question source and the submission sink, as an OpenAPI 3 document and
// validates payloads against it.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Endpoint paths declared by the contract.
const (
	QuestionsPath = "/questions"
	SubmitPath    = "/submit"
)

//go:embed openapi.yaml
var document []byte

// Contract is a parsed and validated endpoint description.
type Contract struct {
	doc       *openapi3.T
	questions *openapi3.Schema
	answers   *openapi3.Schema
}

// Load parses the bundled document. Servers, when given, are advertised in
// the document served to clients.
func Load(ctx context.Context, servers ...string) (*Contract, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	for _, url := range servers {
		if url != "" {
			doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
		}
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}

	questions, err := responseSchema(doc, QuestionsPath, http.MethodGet)
	if err != nil {
		return nil, err
	}
	answers, err := requestSchema(doc, SubmitPath, http.MethodPost)
	if err != nil {
		return nil, err
	}
	return &Contract{doc: doc, questions: questions, answers: answers}, nil
}

// MustLoad is Load for init time use.
func MustLoad(servers ...string) *Contract {
	c, err := Load(context.Background(), servers...)
	if err != nil {
		panic(err)
	}
	return c
}

// Document exposes the parsed OpenAPI document.
func (c *Contract) Document() *openapi3.T { return c.doc }

// JSON renders the document as JSON.
func (c *Contract) JSON() ([]byte, error) {
	return json.Marshal(c.doc)
}

// ValidateQuestions checks a question schema payload.
func (c *Contract) ValidateQuestions(body []byte) error {
	return visit(c.questions, body, "questions")
}

// ValidateAnswers checks a submission payload. Every answer must carry a
// name and a non-empty value.
func (c *Contract) ValidateAnswers(body []byte) error {
	return visit(c.answers, body, "answers")
}

func visit(schema *openapi3.Schema, body []byte, what string) error {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("contract: decode %s: %w", what, err)
	}
	if err := schema.VisitJSON(value); err != nil {
		return fmt.Errorf("contract: invalid %s: %w", what, err)
	}
	return nil
}

func operation(doc *openapi3.T, path, method string) (*openapi3.Operation, error) {
	if doc.Paths == nil {
		return nil, errors.New("contract: document does not contain any paths")
	}
	item := doc.Paths.Value(path)
	if item == nil {
		return nil, fmt.Errorf("contract: path %s not declared", path)
	}
	op := item.GetOperation(method)
	if op == nil {
		return nil, fmt.Errorf("contract: %s %s not declared", method, path)
	}
	return op, nil
}

func requestSchema(doc *openapi3.T, path, method string) (*openapi3.Schema, error) {
	op, err := operation(doc, path, method)
	if err != nil {
		return nil, err
	}
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, fmt.Errorf("contract: %s %s has no request body", method, path)
	}
	return jsonSchema(op.RequestBody.Value.Content, method, path)
}

func responseSchema(doc *openapi3.T, path, method string) (*openapi3.Schema, error) {
	op, err := operation(doc, path, method)
	if err != nil {
		return nil, err
	}
	if op.Responses == nil {
		return nil, fmt.Errorf("contract: %s %s has no responses", method, path)
	}
	ref := op.Responses.Status(http.StatusOK)
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("contract: %s %s has no 200 response", method, path)
	}
	return jsonSchema(ref.Value.Content, method, path)
}

func jsonSchema(content openapi3.Content, method, path string) (*openapi3.Schema, error) {
	mt := content.Get("application/json")
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil, fmt.Errorf("contract: %s %s has no application/json schema", method, path)
	}
	return mt.Schema.Value, nil
}
