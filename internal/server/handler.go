package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hireready/internal/ai"
	"hireready/internal/extract"
	"hireready/internal/observability"
	"hireready/internal/types"
	"hireready/internal/utils"

	"go.opentelemetry.io/otel/attribute"
)

// analyzeInput holds the normalized input for pipeline-backed endpoints,
// regardless of whether the request arrived as JSON or multipart form data.
type analyzeInput struct {
	ResumeText     string
	JobDescription string
}

// parseAnalyzeInput accepts either a JSON body {resumeText, jobDescription}
// or a multipart form with a "resume" file (.pdf/.docx) and a
// "jobDescription" field. Uploaded files go through text extraction.
func (s *Server) parseAnalyzeInput(r *http.Request) (analyzeInput, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
			return analyzeInput{}, fmt.Errorf("failed to parse multipart form: %w", err)
		}

		file, header, err := r.FormFile("resume")
		if err != nil {
			return analyzeInput{}, fmt.Errorf("missing resume file: %w", err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.Warn("Failed to close uploaded file", "error", err)
			}
		}()

		data, err := io.ReadAll(file)
		if err != nil {
			return analyzeInput{}, fmt.Errorf("failed to read resume file: %w", err)
		}

		s.Logger.Debug("Processing uploaded resume",
			"filename", header.Filename,
			"size", utils.FormatFileSize(header.Size))

		resumeText, err := extract.Extract(data, header.Filename)
		if err != nil {
			return analyzeInput{}, err
		}

		return analyzeInput{
			ResumeText:     resumeText,
			JobDescription: r.FormValue("jobDescription"),
		}, nil
	}

	var req AnalyzeRequest
	if err := parseJSONRequest(r, &req); err != nil {
		return analyzeInput{}, err
	}
	return analyzeInput{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
	}, nil
}

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hireready.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		input, err := s.parseAnalyzeInput(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(input.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume", "resumeText field or resume file is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(input.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(input.ResumeText)),
			attribute.Int("request.job_length", len(input.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		metrics := om.GetMetrics()
		var report types.MatchReport
		err = metrics.TrackAIOperationWithTokens(ctx, "analyze_match", func(ctx context.Context) *observability.AIOperationResult {
			var usage *ai.TokenUsage
			report, usage, err = s.Pipeline.Run(ctx, input.ResumeText, input.JobDescription)
			return &observability.AIOperationResult{Error: err, TokenUsage: obsTokenUsage(usage)}
		}, om)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "match_analyzed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze match", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "match_analyzed", true, om,
			attribute.String("overall_match", report.Summary.OverallMatch),
			attribute.Int("matching_skills", report.Summary.MatchingSkills),
			attribute.Int("missing_skills", report.Summary.MissingSkills))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("response.overall_match", report.Summary.OverallMatch),
			attribute.Int("response.matching_skills", report.Summary.MatchingSkills),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createCoverLetterHandler wraps the cover letter handler with observability
func (s *Server) createCoverLetterHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hireready.api")
		ctx, span := tracer.Start(ctx, "api.coverletter")
		defer span.End()

		var req CoverLetterRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		hasAnalyses := req.Job != nil && req.Resume != nil && req.Match != nil
		hasRawText := strings.TrimSpace(req.ResumeText) != "" && strings.TrimSpace(req.JobDescription) != ""
		if !hasAnalyses && !hasRawText {
			err := fmt.Errorf("missing cover letter input")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing input",
				"either job/resume/match analyses or resumeText and jobDescription are required",
				http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Bool("request.from_analyses", hasAnalyses),
			attribute.String("request.tone", req.Tone),
			attribute.String("operation", "coverletter"),
		)

		var letter string
		if hasAnalyses {
			letter = s.CoverLetter.Generate(ctx, *req.Job, *req.Resume, *req.Match, req.Tone)
		} else {
			letter = s.CoverLetter.GenerateFromRaw(ctx, req.ResumeText, req.JobDescription,
				req.CompanyName, req.PositionTitle, req.Tone)
		}

		metrics := om.GetMetrics()
		success := letter != ""
		metrics.RecordBusinessMetric(ctx, "cover_letter_generated", success, om,
			attribute.Int("output.letter_length", len(letter)))

		span.SetAttributes(
			attribute.Bool("success", success),
			attribute.Int("response.letter_length", len(letter)),
		)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(letter)); err != nil {
			span.RecordError(err)
		}
	}
}

// createOptimizeHandler wraps the optimize handler with observability
func (s *Server) createOptimizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hireready.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		resumeText, jobDescription, match, companyName, err := s.parseOptimizeInput(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		metrics := om.GetMetrics()
		if match == nil {
			var report types.MatchReport
			err := metrics.TrackAIOperationWithTokens(ctx, "analyze_match", func(ctx context.Context) *observability.AIOperationResult {
				var usage *ai.TokenUsage
				var runErr error
				report, usage, runErr = s.Pipeline.Run(ctx, resumeText, jobDescription)
				return &observability.AIOperationResult{Error: runErr, TokenUsage: obsTokenUsage(usage)}
			}, om)
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "ai_processing"))
				metrics.RecordBusinessMetric(ctx, "resume_optimized", false, om,
					attribute.String("error", err.Error()))
				writeErrorResponse(w, "Failed to analyze match", err.Error(), http.StatusInternalServerError)
				return
			}
			match = &report.Match
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.String("operation", "optimize"),
		)

		pdfBytes, err := s.Renderer.Render(resumeText, *match)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "render"))
			metrics.RecordBusinessMetric(ctx, "resume_optimized", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to build resume document", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_optimized", true, om,
			attribute.Int("output.pdf_bytes", len(pdfBytes)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.pdf_bytes", len(pdfBytes)),
		)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", optimizedFileName(companyName)))
		if _, err := w.Write(pdfBytes); err != nil {
			span.RecordError(err)
		}
	}
}

// parseOptimizeInput normalizes both optimize request shapes: JSON with an
// existing match analysis, or JSON/multipart with raw inputs. A nil match
// means the caller must run the analysis pipeline first.
func (s *Server) parseOptimizeInput(r *http.Request) (resumeText, jobDescription string, match *types.MatchAnalysis, companyName string, err error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		input, err := s.parseAnalyzeInput(r)
		if err != nil {
			return "", "", nil, "", err
		}
		if strings.TrimSpace(input.JobDescription) == "" {
			return "", "", nil, "", fmt.Errorf("jobDescription field is required")
		}
		return input.ResumeText, input.JobDescription, nil, r.FormValue("companyName"), nil
	}

	var req OptimizeRequest
	if err := parseJSONRequest(r, &req); err != nil {
		return "", "", nil, "", err
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		return "", "", nil, "", fmt.Errorf("resumeText field is required")
	}
	if req.Match == nil && strings.TrimSpace(req.JobDescription) == "" {
		return "", "", nil, "", fmt.Errorf("either match or jobDescription is required")
	}

	return req.ResumeText, req.JobDescription, req.Match, req.CompanyName, nil
}

// obsTokenUsage converts provider token usage into the observability shape.
func obsTokenUsage(usage *ai.TokenUsage) *observability.TokenUsage {
	if usage == nil {
		return nil
	}
	return &observability.TokenUsage{
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens,
	}
}

// optimizedFileName derives the download filename from the company name.
func optimizedFileName(companyName string) string {
	name := strings.TrimSpace(companyName)
	if name == "" {
		name = "updated"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("optimized_resume_%s.pdf", name)
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
