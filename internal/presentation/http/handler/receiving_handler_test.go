package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/cache"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/testutil"
	"github.com/sangkips/investify-receiving/pkg/apperror"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors response.APIResponse with the payload left raw
type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
	Hint    string                `json:"hint"`
}

type draftBody struct {
	Lines    []receiving.LineItem `json:"lines"`
	Warnings []receiving.Warning  `json:"warnings"`
}

type ReceivingHandlerSuite struct {
	testutil.BaseServiceTestSuite
	router  *gin.Engine
	manager uuid.UUID
	sugar   receiving.CatalogItem
	rice    receiving.CatalogItem
}

func TestReceivingHandler(t *testing.T) {
	suite.Run(t, new(ReceivingHandlerSuite))
}

func (s *ReceivingHandlerSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.sugar = s.AddCatalogItem("Sugar 1kg", "SUG-1", 12_000, 15_000, 14_000)
	s.rice = s.AddCatalogItem("Rice 5kg", "RICE-5", 60_000, 0, 0)
	s.manager = uuid.New()

	stores := s.GetStores()
	catalog := service.NewCatalogService(stores.Catalog, cache.NewInMemoryCache(time.Minute, time.Minute), 0)
	suppliers := service.NewSupplierService(stores.Suppliers)
	receivingService := service.NewReceivingService(
		catalog,
		stores.Catalog,
		suppliers,
		stores.Drafts,
		stores.Sink,
		service.NewRoleAuthorizer([]string{enum.RoleManager}),
		cache.NewInMemoryCache(time.Hour, time.Minute),
		receiving.DefaultPolicy(),
		s.GetLogger(),
	).WithClock(s.GetClock().Now)
	h := NewReceivingHandler(receivingService)

	// stands in for the auth and location middleware
	router := gin.New()
	desk := router.Group("/receiving", func(c *gin.Context) {
		c.Set("user_id", s.manager)
		c.Set("user_roles", []string{enum.RoleManager})
		c.Set("location_id", s.GetLocationID())
		c.Next()
	})
	desk.GET("", h.Get)
	desk.POST("/items", h.AddItem)
	desk.POST("/items/import", h.ImportSheet)
	desk.PATCH("/items/:item_id", h.UpdateLine)
	desk.DELETE("/items/:item_id", h.RemoveLine)
	desk.POST("/supplier", h.CreateSupplier)
	desk.PUT("/discount", h.SetDiscount)
	desk.PUT("/settlement", h.SetSettlement)
	desk.POST("/commit", h.Commit)
	s.router = router
}

func (s *ReceivingHandlerSuite) do(method, path string, body io.Reader, contentType string) (int, envelope) {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func (s *ReceivingHandlerSuite) doJSON(method, path, body string) (int, envelope) {
	return s.do(method, path, strings.NewReader(body), "application/json")
}

func (s *ReceivingHandlerSuite) draft(env envelope) draftBody {
	var d draftBody
	s.Require().NoError(json.Unmarshal(env.Data, &d))
	return d
}

func (s *ReceivingHandlerSuite) TestAddItemByIDOrSKU() {
	code, env := s.doJSON(http.MethodPost, "/receiving/items", `{"item_id":"`+s.sugar.ID.String()+`"}`)
	s.Require().Equal(http.StatusOK, code)
	s.Len(s.draft(env).Lines, 1)

	code, env = s.doJSON(http.MethodPost, "/receiving/items", `{"sku":"sug-1"}`)
	s.Require().Equal(http.StatusOK, code)
	lines := s.draft(env).Lines
	s.Require().Len(lines, 1)
	s.Equal(int64(2), lines[0].Quantity)

	code, _ = s.doJSON(http.MethodPost, "/receiving/items", `{}`)
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.doJSON(http.MethodPost, "/receiving/items", `{"sku":"NOPE"}`)
	s.Equal(http.StatusNotFound, code)
}

func (s *ReceivingHandlerSuite) TestUpdateLineBinding() {
	code, _ := s.doJSON(http.MethodPost, "/receiving/items", `{"item_id":"`+s.sugar.ID.String()+`"}`)
	s.Require().Equal(http.StatusOK, code)
	path := "/receiving/items/" + s.sugar.ID.String()

	code, env := s.doJSON(http.MethodPatch, path, `{"field":"quantity","value":-5}`)
	s.Require().Equal(http.StatusOK, code)
	d := s.draft(env)
	s.Equal(int64(1), d.Lines[0].Quantity)
	s.Require().Len(d.Warnings, 1)
	s.Equal(int64(1), d.Warnings[0].Applied)

	code, env = s.doJSON(http.MethodPatch, path, `{"field":"import_price","value":13000}`)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(int64(19_500), s.draft(env).Lines[0].RetailUnitPrice)

	code, env = s.doJSON(http.MethodPatch, path, `{"field":"colour","value":1}`)
	s.Equal(http.StatusUnprocessableEntity, code)
	s.Len(env.Errors, 1)

	code, env = s.doJSON(http.MethodPatch, path, `{"field":"quantity"}`)
	s.Equal(http.StatusUnprocessableEntity, code)
	s.Len(env.Errors, 1)

	code, _ = s.doJSON(http.MethodPatch, "/receiving/items/not-a-uuid", `{"field":"quantity","value":2}`)
	s.Equal(http.StatusBadRequest, code)

	code, env = s.doJSON(http.MethodDelete, path, "")
	s.Require().Equal(http.StatusOK, code)
	s.Empty(s.draft(env).Lines)
}

func (s *ReceivingHandlerSuite) sheetUpload(rows [][]interface{}) (io.Reader, string) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		s.Require().NoError(err)
		s.Require().NoError(f.SetSheetRow(sheet, addr, &row))
	}
	xlsx, err := f.WriteToBuffer()
	s.Require().NoError(err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "delivery.xlsx")
	s.Require().NoError(err)
	_, err = part.Write(xlsx.Bytes())
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())
	return &body, mw.FormDataContentType()
}

func (s *ReceivingHandlerSuite) TestImportSheetUpload() {
	body, contentType := s.sheetUpload([][]interface{}{
		{"SKU", "Quantity", "Import price"},
		{"SUG-1", 6, 12_500},
		{"RICE-5", -2, 60_000},
		{"GHOST", 1, 100},
	})

	code, env := s.do(http.MethodPost, "/receiving/items/import", body, contentType)
	s.Require().Equal(http.StatusOK, code)

	var result struct {
		TotalRows int `json:"total_rows"`
		Applied   int `json:"applied"`
		Failed    int `json:"failed"`
		Draft     draftBody
	}
	s.Require().NoError(json.Unmarshal(env.Data, &result))
	s.Equal(3, result.TotalRows)
	s.Equal(1, result.Applied)
	s.Equal(2, result.Failed)
	s.Require().Len(result.Draft.Lines, 1)
	s.Equal(int64(6), result.Draft.Lines[0].Quantity)

	code, _ = s.doJSON(http.MethodPost, "/receiving/items/import", `{}`)
	s.Equal(http.StatusBadRequest, code)
}

func (s *ReceivingHandlerSuite) TestCreateSupplierBinding() {
	code, env := s.doJSON(http.MethodPost, "/receiving/supplier", `{"name":"Kinangop Dairy","type":"farmer"}`)
	s.Require().Equal(http.StatusCreated, code)

	var created struct {
		Supplier receiving.SupplierRef `json:"supplier"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	s.Equal(enum.SupplierTypeFarmer, created.Supplier.Type)

	code, env = s.doJSON(http.MethodPost, "/receiving/supplier", `{"name":"Rift Traders","type":"broker"}`)
	s.Equal(http.StatusUnprocessableEntity, code)
	s.Len(env.Errors, 1)
}

func (s *ReceivingHandlerSuite) TestSettleAndCommit() {
	code, _ := s.doJSON(http.MethodPost, "/receiving/items", `{"item_id":"`+s.rice.ID.String()+`"}`)
	s.Require().Equal(http.StatusOK, code)

	code, env := s.doJSON(http.MethodPost, "/receiving/commit", "")
	s.Equal(http.StatusUnprocessableEntity, code)
	s.NotEmpty(env.Hint)

	code, _ = s.doJSON(http.MethodPut, "/receiving/discount", `{"value":10,"mode":"percent"}`)
	s.Require().Equal(http.StatusOK, code)
	code, _ = s.doJSON(http.MethodPut, "/receiving/settlement", `{"payment_method":"cash","payment_type":"full"}`)
	s.Require().Equal(http.StatusOK, code)

	code, _ = s.doJSON(http.MethodPost, "/receiving/commit", `{"note":"evening delivery"}`)
	s.Require().Equal(http.StatusCreated, code)

	requests := s.GetStores().Sink.Requests()
	s.Require().Len(requests, 1)
	s.Equal("evening delivery", requests[0].Note)

	code, env = s.doJSON(http.MethodGet, "/receiving", "")
	s.Require().Equal(http.StatusOK, code)
	s.Empty(s.draft(env).Lines)
}
