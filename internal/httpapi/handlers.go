package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/coverage"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/hierarchy"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/trace"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/validate"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("testlayer", func(fl validator.FieldLevel) bool {
			return types.ValidTestLayer(fl.Field().String())
		})
	}
}

func (s *Server) listNodes(c *gin.Context) {
	nodes, err := s.store.Nodes(c.Request.Context(), c.Param("programID"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nodes": nodes})
}

func (s *Server) getCatalog(c *gin.Context) {
	cat, err := s.store.Catalog(c.Request.Context(), c.Param("programID"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (s *Server) listTestCases(c *gin.Context) {
	cases, err := s.store.TestCases(c.Request.Context(), c.Param("programID"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"test_cases": cases})
}

func (s *Server) getTestCase(c *gin.Context) {
	tc, err := s.store.TestCase(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tc)
}

func (s *Server) getDerived(c *gin.Context) {
	summary, err := s.store.DerivedSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// validateTestCase runs the readiness rule checks against the stored
// test case and returns the findings without persisting anything.
func (s *Server) validateTestCase(c *gin.Context) {
	tc, err := s.store.TestCase(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	verrs := validate.TestCase(tc)
	c.JSON(http.StatusOK, gin.H{
		"test_case_id": tc.ID,
		"valid":        len(verrs) == 0,
		"errors":       verrs,
	})
}

// testCaseRequest is the create or update payload for a test case.
// Selections are saved separately.
type testCaseRequest struct {
	ID                string `json:"id"`
	Code              string `json:"code" binding:"required"`
	Title             string `json:"title"`
	TestLayer         string `json:"test_layer" binding:"required,testlayer"`
	Module            string `json:"module"`
	Risk              string `json:"risk"`
	LinkedDataSet     string `json:"linked_data_set"`
	DataReadinessNote string `json:"data_readiness_note"`
}

func (s *Server) createTestCase(c *gin.Context) {
	var req testCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tc := &types.TestCase{
		ID:                req.ID,
		Code:              req.Code,
		Title:             req.Title,
		TestLayer:         req.TestLayer,
		Module:            req.Module,
		Risk:              req.Risk,
		LinkedDataSet:     req.LinkedDataSet,
		DataReadinessNote: req.DataReadinessNote,
	}
	id, err := s.store.SaveTestCase(c.Request.Context(), c.Param("programID"), tc)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) deleteTestCase(c *gin.Context) {
	if err := s.store.DeleteTestCase(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// saveSelectionsRequest is the save payload: the full selection state for
// the test case, replacing whatever is stored.
type saveSelectionsRequest struct {
	Selections []types.TraceSelection `json:"selections" binding:"dive"`
}

// saveSelections replays the submitted selections through an editing
// session so every structural rule is enforced, gates the save on the
// validation rules, persists wholesale, and returns the server-derived
// summary for client reconciliation.
func (s *Server) saveSelections(c *gin.Context) {
	var req saveSelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	tc, err := s.store.TestCase(ctx, id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	programID, err := s.store.ProgramOf(ctx, id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	nodes, err := s.store.Nodes(ctx, programID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	cat, err := s.store.Catalog(ctx, programID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	tc.Groups = nil
	sess := trace.NewSession(tc, hierarchy.NewIndex(nodes), cat)
	if err := applySelections(sess, req.Selections); err != nil {
		s.renderError(c, err)
		return
	}

	if verrs := validate.TestCase(sess.TestCase()); len(verrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
		return
	}

	sels, err := sess.Selections()
	if err != nil {
		s.renderError(c, err)
		return
	}
	if err := s.store.SaveSelections(ctx, id, sels); err != nil {
		s.renderError(c, err)
		return
	}
	summary, err := s.store.DerivedSummary(ctx, id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// applySelections rebuilds session state from the wire shape, surfacing
// the first structural violation.
func applySelections(sess *trace.Session, sels []types.TraceSelection) error {
	for _, sel := range sels {
		if _, err := sess.AttachGroup(sel.L3ID); err != nil {
			return err
		}
		for _, l4 := range sel.L4IDs {
			if err := sess.AddStep(sel.L3ID, l4); err != nil {
				return err
			}
		}
		manual := map[types.ItemKind][]string{
			types.KindRequirement: sel.ManualRequirementIDs,
			types.KindWricef:      sel.ManualWricefIDs,
			types.KindConfig:      sel.ManualConfigIDs,
		}
		for kind, ids := range manual {
			for _, id := range ids {
				if err := sess.AddManual(sel.L3ID, kind, id); err != nil {
					return err
				}
			}
		}
		excluded := map[types.ItemKind][]string{
			types.KindRequirement: sel.ExcludedRequirementIDs,
			types.KindWricef:      sel.ExcludedWricefIDs,
			types.KindConfig:      sel.ExcludedConfigIDs,
		}
		for kind, ids := range excluded {
			for _, id := range ids {
				if _, err := sess.ToggleExcluded(sel.L3ID, kind, id); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Server) listCoverage(c *gin.Context) {
	agg, cases, exec, err := s.aggregator(c)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": agg.Snapshots(cases, exec)})
}

func (s *Server) getCoverage(c *gin.Context) {
	agg, cases, exec, err := s.aggregator(c)
	if err != nil {
		s.renderError(c, err)
		return
	}
	l3ID := c.Param("l3ID")
	found := false
	for _, n := range agg.L3Nodes() {
		if n.ID == l3ID {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown L3 process"})
		return
	}
	c.JSON(http.StatusOK, agg.Snapshot(l3ID, cases, exec))
}

// aggregator loads everything a coverage read needs for the program in
// the request path.
func (s *Server) aggregator(c *gin.Context) (*coverage.Aggregator, []*types.TestCase, *types.ExecutionResults, error) {
	ctx := c.Request.Context()
	programID := c.Param("programID")

	nodes, err := s.store.Nodes(ctx, programID)
	if err != nil {
		return nil, nil, nil, err
	}
	cat, err := s.store.Catalog(ctx, programID)
	if err != nil {
		return nil, nil, nil, err
	}
	cases, err := s.store.TestCases(ctx, programID)
	if err != nil {
		return nil, nil, nil, err
	}
	exec, err := s.store.ExecutionResults(ctx, programID)
	if err != nil {
		return nil, nil, nil, err
	}
	return coverage.NewAggregator(hierarchy.NewIndex(nodes), cat), cases, exec, nil
}

// executionRequest is the tally upload from the test-execution system.
type executionRequest struct {
	TestCaseID string `json:"test_case_id" binding:"required"`
	Runs       int    `json:"runs" binding:"min=0"`
	Passed     int    `json:"passed" binding:"min=0"`
}

func (s *Server) recordExecution(c *gin.Context) {
	var req executionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Passed > req.Runs {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passed exceeds runs"})
		return
	}
	rec := types.ExecutionRecord{TestCaseID: req.TestCaseID, Runs: req.Runs, Passed: req.Passed}
	if err := s.store.RecordExecution(c.Request.Context(), c.Param("programID"), rec); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
