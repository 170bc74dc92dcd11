package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crm-master-backend/config"
	"crm-master-backend/models"
	"crm-master-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{}, &models.Contact{}, &models.Interaction{},
		&models.Sample{}, &models.SampleFee{}, &models.DocumentLink{},
		&models.Exhibition{}, &models.Expense{}, &models.FXRate{},
		&models.TagOption{}, &models.Preference{},
	))

	config.DB = db
	return routes.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createCustomer(t *testing.T, r *gin.Engine, name string) models.Customer {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/customers", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Customer](t, w)
}

func TestDeleteCustomerCascadesSamples(t *testing.T) {
	r := setupRouter(t)
	customer := createCustomer(t, r, "Acme Materials")
	other := createCustomer(t, r, "Borealis")

	for _, body := range []gin.H{
		{"customerId": customer.ID.String(), "crystalType": "CVD", "form": "powder"},
		{"customerId": customer.ID.String(), "crystalType": "HPHT"},
		{"customerId": other.ID.String(), "crystalType": "CVD"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/samples", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// destructive calls are gated behind one explicit confirmation
	w := doJSON(t, r, http.MethodDelete, "/api/customers/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/customers/"+customer.ID.String()+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var dangling int64
	require.NoError(t, config.DB.Model(&models.Sample{}).
		Where("customer_id = ?", customer.ID).Count(&dangling).Error)
	assert.Zero(t, dangling, "no sample may keep a dangling customer id")

	var remaining int64
	require.NoError(t, config.DB.Model(&models.Sample{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining, "other customers' samples survive")
}

func TestSampleIndexAndDerivedName(t *testing.T) {
	r := setupRouter(t)
	customer := createCustomer(t, r, "Acme")

	w := doJSON(t, r, http.MethodPost, "/api/samples", gin.H{
		"customerId":    customer.ID.String(),
		"crystalType":   "X",
		"categories":    []string{"A", "B"},
		"form":          "F",
		"originalSize":  "10um",
		"processedSize": "5um",
		"nickname":      "N",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[models.Sample](t, w)
	assert.Equal(t, 1, first.SampleIndex)
	assert.Equal(t, "X A B F - 10um > 5um (N)", first.SampleName)

	w = doJSON(t, r, http.MethodPost, "/api/samples", gin.H{
		"customerId": customer.ID.String(), "crystalType": "CVD",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode[models.Sample](t, w)
	assert.Equal(t, 2, second.SampleIndex)
}

func TestCustomerRenameCascadesToSamples(t *testing.T) {
	r := setupRouter(t)
	customer := createCustomer(t, r, "Old Name")

	w := doJSON(t, r, http.MethodPost, "/api/samples", gin.H{
		"customerId": customer.ID.String(), "crystalType": "CVD",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/customers/"+customer.ID.String(),
		gin.H{"name": "New Name"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sample models.Sample
	require.NoError(t, config.DB.Where("customer_id = ?", customer.ID).First(&sample).Error)
	assert.Equal(t, "New Name", sample.CustomerName)
}

func TestInteractionsDriveDerivedDates(t *testing.T) {
	r := setupRouter(t)
	customer := createCustomer(t, r, "Acme")
	base := "/api/customers/" + customer.ID.String()

	w := doJSON(t, r, http.MethodPost, base+"/interactions", gin.H{
		"date": "2024-01-01", "effect": "customerReply", "content": "asked for specs",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[models.Interaction](t, w)

	w = doJSON(t, r, http.MethodPost, base+"/interactions", gin.H{
		"date": "2024-01-10", "effect": "myReply", "content": "sent datasheet",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	got := decode[models.Customer](t, doJSON(t, r, http.MethodGet, base, nil))
	require.NotNil(t, got.LastContactDate)
	require.NotNil(t, got.LastCustomerReplyDate)
	require.NotNil(t, got.LastMyReplyDate)
	assert.Equal(t, "2024-01-10", got.LastContactDate.Format("2006-01-02"))
	assert.Equal(t, "2024-01-01", got.LastCustomerReplyDate.Format("2006-01-02"))
	assert.Equal(t, "2024-01-10", got.LastMyReplyDate.Format("2006-01-02"))

	// deleting an interaction recomputes under the preserve policy: the
	// customer-reply date has no supporting interaction left but survives
	w = doJSON(t, r, http.MethodDelete, base+"/interactions/"+first.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got = decode[models.Customer](t, doJSON(t, r, http.MethodGet, base, nil))
	require.NotNil(t, got.LastCustomerReplyDate)
	assert.Equal(t, "2024-01-01", got.LastCustomerReplyDate.Format("2006-01-02"))

	// an authoritative resync applies the computation verbatim and clears it
	w = doJSON(t, r, http.MethodPost, base+"/refresh-dates?authoritative=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got = decode[models.Customer](t, doJSON(t, r, http.MethodGet, base, nil))
	assert.Nil(t, got.LastCustomerReplyDate)
	require.NotNil(t, got.LastMyReplyDate)
	assert.Equal(t, "2024-01-10", got.LastMyReplyDate.Format("2006-01-02"))
}

func importTSV(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "text/tab-separated-values")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportCustomersMergePreservesIdentity(t *testing.T) {
	r := setupRouter(t)
	customer := createCustomer(t, r, "Acme Materials")

	w := importTSV(t, r, "/api/data/import/customers",
		"Customer\tRank\nacme materials\t1\nBorealis\t2\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, config.DB.Model(&models.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var kept models.Customer
	require.NoError(t, config.DB.Where("id = ?", customer.ID).First(&kept).Error,
		"merge re-import keeps the id")
	assert.Equal(t, "acme materials", kept.Name, "incoming fields replace wholesale")
	assert.Equal(t, 1, kept.Rank)
}

func TestImportSamplesUnresolvedCustomerKept(t *testing.T) {
	r := setupRouter(t)
	createCustomer(t, r, "Acme")

	w := importTSV(t, r, "/api/data/import/samples",
		"Customer\tCrystal\nAcme\tCVD\nNobody Co\tHPHT\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	result := decode[map[string]int](t, w)
	assert.Equal(t, 2, result["imported"])
	assert.Equal(t, 1, result["unresolved"])

	var orphan models.Sample
	require.NoError(t, config.DB.Where("customer_name = ?", "Nobody Co").First(&orphan).Error)
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", orphan.CustomerID.String())
}

func TestReplaceImportRequiresConfirm(t *testing.T) {
	r := setupRouter(t)
	createCustomer(t, r, "Acme")

	w := importTSV(t, r, "/api/data/import/customers?mode=replace",
		"Customer\nBorealis\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = importTSV(t, r, "/api/data/import/customers?mode=replace&confirm=true",
		"Customer\nBorealis\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var customers []models.Customer
	require.NoError(t, config.DB.Find(&customers).Error)
	require.Len(t, customers, 1)
	assert.Equal(t, "Borealis", customers[0].Name)
}

func TestExhibitionRenameCascadesTags(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/exhibitions", gin.H{
		"name": "JCK 2024", "eventSeries": []string{"JCK"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	exhibition := decode[models.Exhibition](t, w)

	w = doJSON(t, r, http.MethodPost, "/api/customers", gin.H{
		"name": "Acme", "tags": []string{"JCK 2024"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	customer := decode[models.Customer](t, w)

	w = doJSON(t, r, http.MethodPut, "/api/exhibitions/"+exhibition.ID.String(),
		gin.H{"name": "JCK Las Vegas 2024"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Customer
	require.NoError(t, config.DB.Where("id = ?", customer.ID).First(&got).Error)
	assert.Equal(t, models.StringList{"JCK Las Vegas 2024"}, got.Tags)
}

func TestExhibitionDeleteThenRecreateSameName(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/exhibitions", gin.H{"name": "JCK 2024"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	exhibition := decode[models.Exhibition](t, w)

	w = doJSON(t, r, http.MethodDelete, "/api/exhibitions/"+exhibition.ID.String()+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the name must be free again after a delete
	w = doJSON(t, r, http.MethodPost, "/api/exhibitions", gin.H{"name": "JCK 2024"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestSampleHistoryEndpoints(t *testing.T) {
	r := setupRouter(t)
	customer := createCustomer(t, r, "Acme")

	w := doJSON(t, r, http.MethodPost, "/api/samples", gin.H{
		"customerId": customer.ID.String(), "crystalType": "CVD",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	sample := decode[models.Sample](t, w)
	base := "/api/samples/" + sample.ID.String() + "/history"

	for _, entry := range []gin.H{
		{"date": "2024-02-01", "text": "shipped 2kg"},
		{"date": "2024-03-05", "text": "feedback received"},
	} {
		w = doJSON(t, r, http.MethodPost, base, entry)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	entries := decode[[]map[string]string](t, doJSON(t, r, http.MethodGet, base, nil))
	require.Len(t, entries, 2)
	assert.Equal(t, "feedback received", entries[0]["text"], "newest first")
	assert.Equal(t, "2024-03-05", entries[0]["date"])
	assert.Equal(t, "shipped 2kg", entries[1]["text"])

	// replacing the log is how single entries get edited or removed
	w = doJSON(t, r, http.MethodPut, base, []gin.H{
		{"date": "2024-03-05", "text": "feedback received, positive"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	entries = decode[[]map[string]string](t, doJSON(t, r, http.MethodGet, base, nil))
	require.Len(t, entries, 1)
	assert.Equal(t, "feedback received, positive", entries[0]["text"])
}

func TestGetTagLabels(t *testing.T) {
	r := setupRouter(t)

	labels := decode[map[string]string](t, doJSON(t, r, http.MethodGet, "/api/tags/labels?lang=zh", nil))
	assert.Equal(t, "寄样中", labels["sampling"])
	assert.Equal(t, "等待回复", labels["waitingReply"])

	w := doJSON(t, r, http.MethodPost, "/api/tags", gin.H{
		"kind": "series", "key": "jck", "labelEn": "JCK", "labelZh": "JCK展",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	labels = decode[map[string]string](t, doJSON(t, r, http.MethodGet, "/api/tags/labels?lang=zh", nil))
	assert.Equal(t, "JCK展", labels["jck"], "runtime tag options merge in")

	labels = decode[map[string]string](t, doJSON(t, r, http.MethodGet, "/api/tags/labels", nil))
	assert.Equal(t, "Sampling", labels["sampling"])
	assert.Equal(t, "JCK", labels["jck"])
}

func TestClearDatabaseConfirmGated(t *testing.T) {
	r := setupRouter(t)
	createCustomer(t, r, "Acme")

	w := doJSON(t, r, http.MethodPost, "/api/data/clear", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/data/clear?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.Customer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSettingsUpsertPerKey(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/settings", gin.H{"key": "theme", "value": "dark"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPut, "/api/settings", gin.H{"key": "theme", "value": "light"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/settings", gin.H{"key": "bogus", "value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	settings := decode[map[string]string](t, doJSON(t, r, http.MethodGet, "/api/settings", nil))
	assert.Equal(t, "light", settings["theme"])
}
