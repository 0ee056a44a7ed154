// Package storetest runs an in-process imitation of the online-store
// backend for tests: a gin engine behind httptest.Server implementing the
// routes the client consumes, with in-memory accounts, carts and reviews.
package storetest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// Account is a seeded backend user.
type Account struct {
	ID       int
	Email    string
	Password string
	Name     string
	Role     string
	Phone    string
	Address  string
	Blocked  bool
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]Account // by email
	tokens   map[string]int     // token -> user id
	products map[int]models.Product
	orders   map[int]*ownedOrder // by order id
	reviews  map[models.ReviewID]models.Review
	unlocks  map[int][]models.UnlockedAchievement // by user id

	nextOrderID int

	// LogoutCalls counts POST /auth/logout hits, including failed ones.
	LogoutCalls int
	// CartFailures makes GET /orders/user/cart return 500 that many times.
	CartFailures int
	// BonusTitle, when set, is reported as the applied bonus on the cart.
	BonusTitle string
	// FinalPrice, when non-zero, is reported as the cart's orderAmount.
	FinalPrice float64

	Achievements []models.Achievement
}

type ownedOrder struct {
	owner int
	order models.Order
}

// New starts the fake backend. Callers own closing it.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		accounts:    make(map[string]Account),
		tokens:      make(map[string]int),
		products:    make(map[int]models.Product),
		orders:      make(map[int]*ownedOrder),
		reviews:     make(map[models.ReviewID]models.Review),
		unlocks:     make(map[int][]models.UnlockedAchievement),
		nextOrderID: 1,
	}

	router := gin.New()
	s.routes(router)
	s.Server = httptest.NewServer(router)
	return s
}

// AddAccount seeds a user whose login token will be "token-<id>".
func (s *Server) AddAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.Email] = a
	s.tokens[TokenFor(a.ID)] = a.ID
}

// AddProduct seeds a catalog record.
func (s *Server) AddProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// SetProductPrice changes a seeded product's price, simulating a server-side
// re-pricing between cart writes and reads.
func (s *Server) SetProductPrice(id int, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[id]
	p.Price = price
	s.products[id] = p
}

// SeedCart creates a PROCESSING order for the account with the given lines.
func (s *Server) SeedCart(userID int, items ...models.OrderItem) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextOrderID
	s.nextOrderID++
	s.orders[id] = &ownedOrder{
		owner: userID,
		order: models.Order{ID: id, Status: models.StatusProcessing, Items: items},
	}
	return id
}

// Unlock grants an achievement to the user.
func (s *Server) Unlock(userID int, u models.UnlockedAchievement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocks[userID] = append(s.unlocks[userID], u)
}

// TokenFor returns the bearer token its login endpoint would issue.
func TokenFor(userID int) string {
	return "token-" + strconv.Itoa(userID)
}

// routes registers the consumed surface of the real backend. Where the real
// API mixes static and parameter segments at the same position (gin's router
// refuses those), one parameterized route dispatches on the segment value.
func (s *Server) routes(r *gin.Engine) {
	r.POST("/auth/login", s.login)
	r.POST("/auth/register", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/auth/logout", s.logout)

	r.GET("/products/user", s.listProducts)
	r.GET("/products/user/:id", s.getProduct)
	r.GET("/products/user/:id/:sub", s.listProductsByCategory)
	r.GET("/categories/without", s.listCategories)
	r.GET("/categories/full", s.listCategories)

	r.GET("/orders/user/cart", s.getCart)
	r.GET("/orders/user", s.listOrders)
	r.POST("/orders/items/:id", s.addItem)
	r.PUT("/orders/items/:id/:action", s.itemAction) // decrease or a quantity
	r.PUT("/orders/sent", s.placeOrder)
	r.PUT("/orders/cancel/:id", s.cancelOrder)
	r.DELETE("/orders/:id", s.deleteOrder)
	r.DELETE("/orders/:id/:pid", s.removeItem) // only /orders/items/{pid}

	r.GET("/reviews/:id", s.reviewsDispatch) // "user" or a product id
	r.POST("/reviews/product/:id", s.submitReview)
	r.DELETE("/reviews/product/:id", s.deleteReview)

	r.GET("/user/:id", s.userDispatch) // "achievements" or a user id
	r.GET("/achievements", s.listAchievements)
	r.PUT("/user/update", s.updateProfile)
	r.PUT("/user/password", s.changePassword)

	r.GET("/admin/users", s.adminOnly(s.adminUsers))
	r.PUT("/admin/users/:id/block", s.adminOnly(s.adminToggleBlock))
	r.GET("/admin/orders", s.adminOnly(s.adminOrders))
	r.PUT("/admin/orders/:id/status", s.adminOnly(s.adminSetStatus))
	r.DELETE("/admin/orders/:id", s.adminOnly(s.adminDeleteOrder))
	r.POST("/admin/products/create", s.adminOnly(s.adminCreateProduct))
	r.PUT("/admin/products/:id", s.adminOnly(s.adminUpdateProduct))
	r.DELETE("/admin/product/:id", s.adminOnly(s.adminDeleteProduct))
	r.POST("/admin/category/create", s.adminOnly(s.adminCreateCategory))
	r.GET("/admin/reviews/user/:id", s.adminOnly(s.adminUserReviews))
	r.DELETE("/admin/reviews/:uid/:pid", s.adminOnly(s.adminDeleteReview))
	r.GET("/admin/stats/product-count", s.adminOnly(s.adminProductCount))
	r.GET("/admin/stats/users-count", s.adminOnly(s.adminUsersCount))
	r.GET("/admin/stats/orders", s.adminOnly(s.adminOrderStats))
}

func (s *Server) authed(c *gin.Context) (Account, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return Account{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[strings.TrimPrefix(header, "Bearer ")]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bad token"})
		return Account{}, false
	}
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
	return Account{}, false
}

func (s *Server) login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[creds.Email]
	if !ok || a.Password != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if a.Blocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "account blocked"})
		return
	}

	token := TokenFor(a.ID)
	s.tokens[token] = a.ID
	resp := gin.H{
		"token": token,
		"id":    strconv.Itoa(a.ID),
		"role":  a.Role,
	}
	if a.Role == models.RoleUser {
		resp["name"] = a.Name
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) logout(c *gin.Context) {
	s.mu.Lock()
	s.LogoutCalls++
	s.mu.Unlock()
	if _, ok := s.authed(c); !ok {
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filter := map[int]bool{}
	if ids := c.Query("ids"); ids != "" {
		for _, raw := range strings.Split(ids, ",") {
			if id, err := strconv.Atoi(raw); err == nil {
				filter[id] = true
			}
		}
	}
	out := []models.Product{}
	for _, p := range s.products {
		if len(filter) == 0 || filter[p.ID] {
			out = append(out, p)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) listProductsByCategory(c *gin.Context) {
	if c.Param("id") != "category" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	id, _ := strconv.Atoi(c.Param("sub"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for _, p := range s.products {
		if p.Category != nil && p.Category.ID == id {
			out = append(out, p)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[int]bool{}
	out := []models.Category{}
	for _, p := range s.products {
		if p.Category != nil && !seen[p.Category.ID] {
			seen[p.Category.ID] = true
			out = append(out, *p.Category)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) activeOrderLocked(userID int) *ownedOrder {
	for _, o := range s.orders {
		if o.owner == userID && o.order.Status == models.StatusProcessing {
			return o
		}
	}
	return nil
}

func (s *Server) getCart(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CartFailures > 0 {
		s.CartFailures--
		c.String(http.StatusInternalServerError, "cart unavailable")
		return
	}
	active := s.activeOrderLocked(a.ID)
	if active == nil {
		// Matches the real backend: 200 with an empty body.
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":             active.order,
		"orderAmount":       s.FinalPrice,
		"appliedBonusTitle": s.BonusTitle,
	})
}

func (s *Server) listOrders(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []gin.H{}
	for _, o := range s.orders {
		if o.owner == a.ID {
			out = append(out, gin.H{"order": o.order, "finalPrice": o.order.FinalPrice})
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) addItem(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	productID, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product not found"})
		return
	}
	if p.StockQuantity == 0 {
		c.String(http.StatusBadRequest, "out of stock")
		return
	}

	active := s.activeOrderLocked(a.ID)
	if active == nil {
		id := s.nextOrderID
		s.nextOrderID++
		active = &ownedOrder{owner: a.ID, order: models.Order{ID: id, Status: models.StatusProcessing}}
		s.orders[id] = active
	}
	for i := range active.order.Items {
		if active.order.Items[i].Product.ID == productID {
			active.order.Items[i].Quantity++
			c.JSON(http.StatusOK, active.order)
			return
		}
	}
	active.order.Items = append(active.order.Items, models.OrderItem{
		Product: p, Quantity: 1, Price: p.Price,
	})
	c.JSON(http.StatusOK, active.order)
}

// itemAction serves PUT /orders/items/{pid}/decrease and
// PUT /orders/items/{pid}/{qty}.
func (s *Server) itemAction(c *gin.Context) {
	if c.Param("action") == "decrease" {
		s.decreaseItem(c)
		return
	}
	s.setQuantity(c)
}

func (s *Server) setQuantity(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	productID, _ := strconv.Atoi(c.Param("id"))
	qty, err := strconv.Atoi(c.Param("action"))
	if err != nil || qty <= 0 {
		c.String(http.StatusBadRequest, "quantity must be positive")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.activeOrderLocked(a.ID)
	if active == nil {
		c.String(http.StatusBadRequest, "no active order")
		return
	}
	p := s.products[productID]
	if qty > p.StockQuantity {
		c.String(http.StatusBadRequest, "not enough stock")
		return
	}
	for i := range active.order.Items {
		if active.order.Items[i].Product.ID == productID {
			active.order.Items[i].Quantity = qty
			c.JSON(http.StatusOK, gin.H{"order": active.order})
			return
		}
	}
	c.String(http.StatusBadRequest, "item not in order")
}

func (s *Server) decreaseItem(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	productID, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.activeOrderLocked(a.ID)
	if active == nil {
		c.String(http.StatusBadRequest, "no active order")
		return
	}
	for i := range active.order.Items {
		if active.order.Items[i].Product.ID == productID {
			active.order.Items[i].Quantity--
			if active.order.Items[i].Quantity <= 0 {
				active.order.Items = append(active.order.Items[:i], active.order.Items[i+1:]...)
			}
			s.dropEmptyLocked(active)
			c.JSON(http.StatusOK, gin.H{"order": active.order})
			return
		}
	}
	c.String(http.StatusBadRequest, "item not in order")
}

// removeItem serves DELETE /orders/items/{pid}; any other first segment is
// not a route the real backend has.
func (s *Server) removeItem(c *gin.Context) {
	if c.Param("id") != "items" {
		c.String(http.StatusNotFound, "not found")
		return
	}
	a, ok := s.authed(c)
	if !ok {
		return
	}
	productID, _ := strconv.Atoi(c.Param("pid"))

	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.activeOrderLocked(a.ID)
	if active == nil {
		c.String(http.StatusBadRequest, "no active order")
		return
	}
	for i := range active.order.Items {
		if active.order.Items[i].Product.ID == productID {
			active.order.Items = append(active.order.Items[:i], active.order.Items[i+1:]...)
			break
		}
	}
	s.dropEmptyLocked(active)
	c.JSON(http.StatusOK, gin.H{"order": active.order})
}

// dropEmptyLocked deletes an active order whose last line was removed, so an
// emptied cart reads back as "no active order".
func (s *Server) dropEmptyLocked(o *ownedOrder) {
	if len(o.order.Items) == 0 {
		delete(s.orders, o.order.ID)
	}
}

func (s *Server) deleteOrder(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	orderID, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok || o.owner != a.ID {
		c.String(http.StatusBadRequest, "order not found")
		return
	}
	delete(s.orders, orderID)
	c.Status(http.StatusNoContent)
}

func (s *Server) placeOrder(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.activeOrderLocked(a.ID)
	if active == nil {
		c.String(http.StatusBadRequest, "no active order")
		return
	}
	active.order.Status = models.StatusSent
	c.JSON(http.StatusOK, active.order)
}

func (s *Server) cancelOrder(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	orderID, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok || o.owner != a.ID || o.order.Status != models.StatusSent {
		c.String(http.StatusBadRequest, "order cannot be cancelled")
		return
	}
	o.order.Status = models.StatusCancelled
	c.JSON(http.StatusOK, o.order)
}

// reviewsDispatch serves GET /reviews/user and GET /reviews/{productId}.
func (s *Server) reviewsDispatch(c *gin.Context) {
	if c.Param("id") == "user" {
		s.myReviews(c)
		return
	}
	s.productReviews(c)
}

func (s *Server) productReviews(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.ID.ProductID == productID {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) myReviews(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.ID.UserID == a.ID {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) submitReview(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	productID, _ := strconv.Atoi(c.Param("id"))
	rating, _ := strconv.Atoi(c.Query("rating"))
	if rating < 1 || rating > 5 {
		c.String(http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := models.ReviewID{UserID: a.ID, ProductID: productID}
	if _, exists := s.reviews[id]; exists {
		c.String(http.StatusConflict, "review already exists")
		return
	}
	s.reviews[id] = models.Review{ID: id, Rating: rating, Comment: c.Query("comment")}
	c.Status(http.StatusOK)
}

func (s *Server) deleteReview(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	productID, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	id := models.ReviewID{UserID: a.ID, ProductID: productID}
	if _, exists := s.reviews[id]; !exists {
		c.String(http.StatusNotFound, "review not found")
		return
	}
	delete(s.reviews, id)
	c.Status(http.StatusOK)
}

// userDispatch serves GET /user/achievements and GET /user/{id}.
func (s *Server) userDispatch(c *gin.Context) {
	if c.Param("id") == "achievements" {
		s.listUnlocked(c)
		return
	}
	s.getUser(c)
}

func (s *Server) getUser(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))
	if id != a.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, models.User{
		ID: a.ID, Name: a.Name, Email: a.Email,
		Phone: a.Phone, Address: a.Address, Role: a.Role,
	})
}

func (s *Server) updateProfile(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.Name, a.Phone, a.Address = req.Name, req.Phone, req.Address
	s.accounts[a.Email] = a
	c.Status(http.StatusOK)
}

func (s *Server) changePassword(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.OldPassword != a.Password {
		c.String(http.StatusBadRequest, "wrong password")
		return
	}
	a.Password = req.NewPassword
	s.accounts[a.Email] = a
	c.Status(http.StatusOK)
}

func (s *Server) listAchievements(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.Achievements
	if out == nil {
		out = []models.Achievement{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listUnlocked(c *gin.Context) {
	a, ok := s.authed(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.unlocks[a.ID]
	if out == nil {
		out = []models.UnlockedAchievement{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminOnly(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := s.authed(c)
		if !ok {
			return
		}
		if a.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		h(c)
	}
}

func (s *Server) adminUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, a := range s.accounts {
		if a.Role == models.RoleUser {
			out = append(out, models.User{
				ID: a.ID, Name: a.Name, Email: a.Email,
				Phone: a.Phone, Address: a.Address, Blocked: a.Blocked,
			})
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminToggleBlock(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, a := range s.accounts {
		if a.ID == id {
			a.Blocked = !a.Blocked
			s.accounts[email] = a
			c.Status(http.StatusOK)
			return
		}
	}
	c.Status(http.StatusNotFound)
}

func (s *Server) adminOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		out = append(out, o.order)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminSetStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		c.String(http.StatusNotFound, "order not found")
		return
	}
	o.order.Status = req.Status
	c.JSON(http.StatusOK, o.order)
}

func (s *Server) adminDeleteOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) adminCreateProduct(c *gin.Context) {
	var in struct {
		Name          string  `json:"name"`
		Description   string  `json:"description"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stockQuantity"`
		Image         string  `json:"image"`
		CategoryID    int     `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := len(s.products) + 1
	for s.products[id].ID != 0 {
		id++
	}
	p := models.Product{
		ID: id, Name: in.Name, Description: in.Description,
		Price: in.Price, StockQuantity: in.StockQuantity, Image: in.Image,
	}
	if in.CategoryID != 0 {
		p.Category = &models.Category{ID: in.CategoryID}
	}
	s.products[id] = p
	c.JSON(http.StatusOK, p)
}

func (s *Server) adminUpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var in struct {
		Name          string  `json:"name"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stockQuantity"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	p.Name, p.Price, p.StockQuantity = in.Name, in.Price, in.StockQuantity
	s.products[id] = p
	c.JSON(http.StatusOK, p)
}

func (s *Server) adminDeleteProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	delete(s.products, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) adminCreateCategory(c *gin.Context) {
	var in models.Category
	if err := c.ShouldBindJSON(&in); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	s.mu.Lock()
	in.ID = 100 + len(s.products)
	s.mu.Unlock()
	c.JSON(http.StatusOK, in)
}

func (s *Server) adminUserReviews(c *gin.Context) {
	userID, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.ID.UserID == userID {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminDeleteReview(c *gin.Context) {
	uid, _ := strconv.Atoi(c.Param("uid"))
	pid, _ := strconv.Atoi(c.Param("pid"))
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reviews, models.ReviewID{UserID: uid, ProductID: pid})
	c.Status(http.StatusOK)
}

func (s *Server) adminProductCount(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, len(s.products))
}

func (s *Server) adminUsersCount(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.accounts {
		if a.Role == models.RoleUser {
			n++
		}
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) adminOrderStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats models.OrderStats
	for _, o := range s.orders {
		switch o.order.Status {
		case models.StatusProcessing:
			stats.Processing++
		case models.StatusSent:
			stats.Sent++
		case models.StatusDelivered:
			stats.Delivered++
			stats.TotalSales += orderTotal(o.order)
		case models.StatusCancelled:
			stats.Cancelled++
		}
	}
	c.JSON(http.StatusOK, stats)
}

func orderTotal(o models.Order) float64 {
	if o.FinalPrice > 0 {
		return o.FinalPrice
	}
	sum := 0.0
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
