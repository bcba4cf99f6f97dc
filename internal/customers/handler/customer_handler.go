package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/wso2/customer-health-service/internal/customers/model"
	"github.com/wso2/customer-health-service/internal/customers/provider"
	eventprovider "github.com/wso2/customer-health-service/internal/events/provider"
	healthprovider "github.com/wso2/customer-health-service/internal/healthscore/provider"
	"github.com/wso2/customer-health-service/internal/system/authn"
	"github.com/wso2/customer-health-service/internal/system/log"
	"github.com/wso2/customer-health-service/internal/system/utils"
)

type CustomerHandler struct{}

func NewCustomerHandler() *CustomerHandler {

	return &CustomerHandler{}
}

// ListCustomers handles GET /customers. Every customer is returned with its
// current health score computed fresh from the event store.
func (ch *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {

	healthService := healthprovider.NewHealthScoreProvider().GetHealthScoreService()
	summaries, err := healthService.GetCustomerSummaries()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, summaries)
}

// CreateCustomer handles POST /customers.
func (ch *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {

	if err := authn.ValidateAuthentication(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var customer model.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, utils.HandleDecodeError(err, "customer"), http.StatusBadRequest)
		return
	}

	customerService := provider.NewCustomerProvider().GetCustomerService()
	created, err := customerService.AddCustomer(customer)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	logger.Info(fmt.Sprintf("Customer: %s created successfully", created.Id))
	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// GetCustomer handles GET /customers/{id}.
func (ch *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {

	customerId := r.PathValue("id")
	if customerId == "" {
		http.Error(w, "Missing customer id", http.StatusBadRequest)
		return
	}

	customerService := provider.NewCustomerProvider().GetCustomerService()
	customer, err := customerService.GetCustomer(customerId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /customers/{id}. Events are removed by the
// store cascade.
func (ch *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {

	if err := authn.ValidateAuthentication(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	customerId := r.PathValue("id")
	if customerId == "" {
		http.Error(w, "Missing customer id", http.StatusBadRequest)
		return
	}

	customerService := provider.NewCustomerProvider().GetCustomerService()
	if err := customerService.DeleteCustomer(customerId); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	logger.Info(fmt.Sprintf("Customer: %s deleted successfully", customerId))
	w.WriteHeader(http.StatusNoContent)
}

// GetCustomerHealth handles GET /customers/{id}/health.
func (ch *CustomerHandler) GetCustomerHealth(w http.ResponseWriter, r *http.Request) {

	customerId := r.PathValue("id")
	if customerId == "" {
		http.Error(w, "Missing customer id", http.StatusBadRequest)
		return
	}

	healthService := healthprovider.NewHealthScoreProvider().GetHealthScoreService()
	report, err := healthService.GetCustomerHealth(customerId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, report)
}

// GetCustomerEvents handles GET /customers/{id}/events. This is a raw
// pass-through of recent events, not a computed view.
func (ch *CustomerHandler) GetCustomerEvents(w http.ResponseWriter, r *http.Request) {

	customerId := r.PathValue("id")
	if customerId == "" {
		http.Error(w, "Missing customer id", http.StatusBadRequest)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid limit, must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	eventService := eventprovider.NewEventProvider().GetEventService()
	events, err := eventService.GetRecentEventsForCustomer(customerId, limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, events)
}
