package foodController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/middleware"
	"github.com/JEYMISPAUL/master-delivery/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database: every pooled connection must see the
	// same data, and every test must get a fresh one.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Characteristic{},
		&models.Comment{},
	))
	return db
}

// fakeStore records image operations instead of touching the disk.
type fakeStore struct {
	saved   []string
	removed []string
}

func (s *fakeStore) Save(file *multipart.FileHeader) (string, error) {
	url := "/uploads/" + file.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *fakeStore) Remove(url string) error {
	s.removed = append(s.removed, url)
	return nil
}

func testRouter(db *gorm.DB, store *fakeStore, p middleware.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetCurrentUser(c, p)
	})

	r.GET("/menu", GetMenuHandler(db))
	r.GET("/menu/:foodID", GetFoodHandler(db))
	r.GET("/menu/:foodID/stock", GetStockHandler(db))
	r.POST("/menu/:foodID/comments", AddCommentHandler(db))
	r.POST("/admin/menu", CreateFoodHandler(db, store))
	r.PUT("/admin/menu/:foodID", UpdateFoodHandler(db, store))
	r.PUT("/admin/menu/:foodID/stock", UpdateStockHandler(db))
	r.DELETE("/admin/menu/:foodID", DeleteFoodHandler(db, store))
	r.GET("/admin/menu/export", ExportMenuToExcelHandler(db))
	r.POST("/admin/menu/characteristics", CreateCharacteristicHandler(db))
	r.PUT("/admin/menu/characteristics/:charID", UpdateCharacteristicHandler(db))
	return r
}

func seed(t *testing.T, db *gorm.DB, name string, category models.FoodCategory, daily bool) models.FoodItem {
	t.Helper()
	food := models.FoodItem{Name: name, Category: category, Price: 5, DailyMenu: daily, Stock: 10}
	require.NoError(t, db.Create(&food).Error)
	return food
}

func chefPrincipal() middleware.Principal {
	return middleware.Principal{ID: 1, Name: "Ana", Surname: "Reyes", Role: models.RoleChef}
}

func clientPrincipal() middleware.Principal {
	return middleware.Principal{ID: 2, Name: "Carla", Surname: "Mendez", Role: models.RoleClient}
}

func TestListMenuRoleVisibility(t *testing.T) {
	db := testDB(t)
	seed(t, db, "Mofongo", models.CategoryMain, true)
	seed(t, db, "Flan", models.CategoryDessert, false)

	// Clients only see the daily menu.
	items, err := ListMenu(db, MenuFilter{Role: models.RoleClient})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mofongo", items[0].Name)

	// Staff see the full catalog.
	items, err = ListMenu(db, MenuFilter{Role: models.RoleChef})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestListMenuFiltersCompose(t *testing.T) {
	db := testDB(t)
	seed(t, db, "Pollo Guisado", models.CategoryMain, true)
	seed(t, db, "Pollo Frito", models.CategoryMain, true)
	seed(t, db, "Jugo de Pollo", models.CategoryDrink, true)

	// Case-insensitive substring search.
	items, err := ListMenu(db, MenuFilter{Role: models.RoleClient, Search: "POLLO"})
	require.NoError(t, err)
	assert.Len(t, items, 3)

	// Search and category compose conjunctively.
	category := models.CategoryMain
	items, err = ListMenu(db, MenuFilter{Role: models.RoleClient, Search: "pollo", Category: &category})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = ListMenu(db, MenuFilter{Role: models.RoleClient, Search: "guisado", Category: &category})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pollo Guisado", items[0].Name)
}

func TestPaginate(t *testing.T) {
	items := make([]models.FoodItem, 7)
	for i := range items {
		items[i] = models.FoodItem{ID: uint(i + 1)}
	}

	page, totalPages := Paginate(items, 1, 3)
	assert.Equal(t, 3, totalPages)
	require.Len(t, page, 3)
	assert.Equal(t, uint(1), page[0].ID)

	page, totalPages = Paginate(items, 3, 3)
	assert.Equal(t, 3, totalPages)
	require.Len(t, page, 1)
	assert.Equal(t, uint(7), page[0].ID)

	// A page past the end is empty, not an error.
	page, totalPages = Paginate(items, 4, 3)
	assert.Equal(t, 3, totalPages)
	assert.Empty(t, page)

	// Exact division.
	page, totalPages = Paginate(items[:6], 1, 3)
	assert.Equal(t, 2, totalPages)
	assert.Len(t, page, 3)

	page, totalPages = Paginate(nil, 1, 3)
	assert.Zero(t, totalPages)
	assert.Empty(t, page)
}

func TestGetMenuHandlerPaginates(t *testing.T) {
	db := testDB(t)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		seed(t, db, name, models.CategoryMain, true)
	}
	router := testRouter(db, &fakeStore{}, clientPrincipal())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/menu?page=2&page_size=2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Items      []models.FoodItem `json:"items"`
		Page       int               `json:"page"`
		TotalPages int               `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "C", resp.Items[0].Name)
}

func TestCharacteristicNameUniqueOnCreateOnly(t *testing.T) {
	db := testDB(t)
	router := testRouter(db, &fakeStore{}, chefPrincipal())

	post := func(name string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]interface{}{"name": name, "detail": "d", "price": 1.5})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/admin/menu/characteristics", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, post("Spicy").Code)
	assert.Equal(t, http.StatusCreated, post("Extra cheese").Code)

	// Duplicate name on create is rejected.
	w := post("Spicy")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Editing may reuse an existing name.
	var extra models.Characteristic
	require.NoError(t, db.First(&extra, "name = ?", "Extra cheese").Error)
	body, _ := json.Marshal(map[string]interface{}{"name": "Spicy", "detail": "renamed", "price": 2.0})
	w = httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/menu/characteristics/"+itoa(extra.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestCreateFoodWithoutImage(t *testing.T) {
	db := testDB(t)
	store := &fakeStore{}
	router := testRouter(db, store, chefPrincipal())

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	form.WriteField("name", "Asopao")
	form.WriteField("price", "7.25")
	form.WriteField("category", "main")
	form.WriteField("daily_menu", "true")
	form.WriteField("stock", "4")
	form.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/menu", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	router.ServeHTTP(w, req)

	// The missing upload is a soft failure: created, with a warning.
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Food    models.FoodItem `json:"food"`
		Warning string          `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, MissingImageWarning, resp.Warning)
	assert.Empty(t, resp.Food.Image)
	assert.Empty(t, store.saved)

	var count int64
	db.Model(&models.FoodItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateFoodWithImage(t *testing.T) {
	db := testDB(t)
	store := &fakeStore{}
	router := testRouter(db, store, chefPrincipal())

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	form.WriteField("name", "Asopao")
	form.WriteField("price", "7.25")
	form.WriteField("category", "main")
	part, err := form.CreateFormFile("image", "asopao.jpg")
	require.NoError(t, err)
	part.Write([]byte("not-really-a-jpeg"))
	form.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/menu", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.saved, 1)

	var food models.FoodItem
	require.NoError(t, db.First(&food, "name = ?", "Asopao").Error)
	assert.Equal(t, "/uploads/asopao.jpg", food.Image)
}

func TestDeleteFoodRemovesImage(t *testing.T) {
	db := testDB(t)
	store := &fakeStore{}
	router := testRouter(db, store, chefPrincipal())

	food := seed(t, db, "Flan", models.CategoryDessert, false)
	require.NoError(t, db.Model(&food).Update("image", "/uploads/flan.jpg").Error)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/menu/"+itoa(food.ID), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"/uploads/flan.jpg"}, store.removed)

	var count int64
	db.Model(&models.FoodItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddComment(t *testing.T) {
	db := testDB(t)
	author := models.User{Name: "Carla", Surname: "Mendez", Phone: "555-0001", Email: "carla@example.com", Password: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&author).Error)
	food := seed(t, db, "Mofongo", models.CategoryMain, true)

	router := testRouter(db, &fakeStore{}, middleware.Principal{ID: author.ID, Name: author.Name, Surname: author.Surname, Role: models.RoleClient})

	post := func(content string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"content": content})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/menu/"+itoa(food.ID)+"/comments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, post("   ").Code)
	require.Equal(t, http.StatusCreated, post("Delicious!").Code)

	// Comment shows up on the detail view with its author.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/menu/"+itoa(food.ID), nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var detail models.FoodItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Delicious!", detail.Comments[0].Content)
	assert.Equal(t, "Carla", detail.Comments[0].Author.Name)
}

func TestUpdateStock(t *testing.T) {
	db := testDB(t)
	router := testRouter(db, &fakeStore{}, chefPrincipal())
	food := seed(t, db, "Flan", models.CategoryDessert, false)

	body, _ := json.Marshal(map[string]int{"stock": 42})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/menu/"+itoa(food.ID)+"/stock", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var updated models.FoodItem
	require.NoError(t, db.First(&updated, "id = ?", food.ID).Error)
	assert.Equal(t, 42, updated.Stock)
}

func TestExportMenuToExcel(t *testing.T) {
	db := testDB(t)
	router := testRouter(db, &fakeStore{}, chefPrincipal())
	seed(t, db, "Mofongo", models.CategoryMain, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/menu/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "menu.xlsx")
	assert.NotZero(t, w.Body.Len())
}
