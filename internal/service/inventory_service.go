package service

import (
	"context"
	"errors"
	"strings"

	"retail-concierge/internal/domain"
)

var ErrMissingProductID = errors.New("product id is required")

// LocationContext narrows store availability to a city or region.
type LocationContext struct {
	City string `json:"city"`
}

// InventoryService defines the interface for stock availability checks
type InventoryService interface {
	CheckInventory(ctx context.Context, productID string, attributes map[string]string, location *LocationContext) (*domain.InventoryReport, error)
}

type inventoryService struct {
	lowStockThreshold int
}

// NewInventoryService creates a new instance of InventoryService. The
// low-stock threshold is configuration, not business logic: the prototype
// hardcoded 50.
func NewInventoryService(lowStockThreshold int) InventoryService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 50
	}
	return &inventoryService{lowStockThreshold: lowStockThreshold}
}

// CheckInventory reports warehouse and store availability for a product.
// Product IDs containing OUT_OF_STOCK or LOW_STOCK select the corresponding
// fixture scenario, mirroring the upstream mock data.
func (s *inventoryService) CheckInventory(_ context.Context, productID string, _ map[string]string, location *LocationContext) (*domain.InventoryReport, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, ErrMissingProductID
	}

	warehouses := warehouseInventory(productID)
	total := 0
	for _, wh := range warehouses {
		total += wh.StockLevel
	}

	return &domain.InventoryReport{
		ProductID:        productID,
		OnlineStatus:     s.onlineStatus(total),
		TotalOnlineStock: total,
		Warehouses:       warehouses,
		Stores:           storeInventory(productID, location),
	}, nil
}

func (s *inventoryService) onlineStatus(totalStock int) domain.StockStatus {
	switch {
	case totalStock == 0:
		return domain.StockStatusOutOfStock
	case totalStock < s.lowStockThreshold:
		return domain.StockStatusLowStock
	default:
		return domain.StockStatusInStock
	}
}

func warehouseInventory(productID string) []domain.WarehouseStock {
	stock := map[string]int{"WH_NORTH": 150, "WH_SOUTH": 80, "WH_WEST": 120, "WH_EAST": 60}
	switch {
	case strings.Contains(productID, "OUT_OF_STOCK"):
		stock = map[string]int{"WH_NORTH": 0, "WH_SOUTH": 0, "WH_WEST": 0, "WH_EAST": 0}
	case strings.Contains(productID, "LOW_STOCK"):
		stock = map[string]int{"WH_NORTH": 3, "WH_SOUTH": 2, "WH_WEST": 1, "WH_EAST": 0}
	}

	return []domain.WarehouseStock{
		{WarehouseID: "WH_NORTH", WarehouseName: "North Regional Warehouse", Location: "Delhi NCR", StockLevel: stock["WH_NORTH"], ShippingTime: "2-3 days"},
		{WarehouseID: "WH_SOUTH", WarehouseName: "South Regional Warehouse", Location: "Bangalore", StockLevel: stock["WH_SOUTH"], ShippingTime: "2-3 days"},
		{WarehouseID: "WH_WEST", WarehouseName: "West Regional Warehouse", Location: "Mumbai", StockLevel: stock["WH_WEST"], ShippingTime: "2-3 days"},
		{WarehouseID: "WH_EAST", WarehouseName: "East Regional Warehouse", Location: "Kolkata", StockLevel: stock["WH_EAST"], ShippingTime: "2-3 days"},
	}
}

func storeInventory(productID string, location *LocationContext) []domain.StoreStock {
	var stores []domain.StoreStock
	switch {
	case strings.Contains(productID, "OUT_OF_STOCK"):
		stores = []domain.StoreStock{
			{StoreID: "STORE_SCW_DL", StoreName: "Select Citywalk", Address: "District Centre, Saket, New Delhi - 110017", City: "Delhi", Region: "North", StockLevel: 0, StockDescriptor: "out_of_stock"},
			{StoreID: "STORE_DLF_DL", StoreName: "DLF Promenade", Address: "3, Nelson Mandela Road, Vasant Kunj, New Delhi - 110070", City: "Delhi", Region: "North", StockLevel: 0, StockDescriptor: "out_of_stock"},
			{StoreID: "STORE_AMB_DL", StoreName: "Ambience Mall", Address: "Ambience Island, NH-8, Gurgaon - 122002", City: "Gurgaon", Region: "North", StockLevel: 0, StockDescriptor: "out_of_stock"},
		}
	case strings.Contains(productID, "LOW_STOCK"):
		stores = []domain.StoreStock{
			{StoreID: "STORE_SCW_DL", StoreName: "Select Citywalk", Address: "District Centre, Saket, New Delhi - 110017", City: "Delhi", Region: "North", StockLevel: 1, StockDescriptor: "low"},
			{StoreID: "STORE_DLF_DL", StoreName: "DLF Promenade", Address: "3, Nelson Mandela Road, Vasant Kunj, New Delhi - 110070", City: "Delhi", Region: "North", StockLevel: 2, StockDescriptor: "low"},
			{StoreID: "STORE_PHX_MUM", StoreName: "Phoenix Palladium", Address: "High Street Phoenix, Lower Parel, Mumbai - 400013", City: "Mumbai", Region: "West", StockLevel: 1, StockDescriptor: "low"},
		}
	default:
		stores = []domain.StoreStock{
			{StoreID: "STORE_SCW_DL", StoreName: "Select Citywalk", Address: "District Centre, Saket, New Delhi - 110017", City: "Delhi", Region: "North", StockLevel: 5, StockDescriptor: "low"},
			{StoreID: "STORE_DLF_DL", StoreName: "DLF Promenade", Address: "3, Nelson Mandela Road, Vasant Kunj, New Delhi - 110070", City: "Delhi", Region: "North", StockLevel: 2, StockDescriptor: "low"},
			{StoreID: "STORE_AMB_DL", StoreName: "Ambience Mall", Address: "Ambience Island, NH-8, Gurgaon - 122002", City: "Gurgaon", Region: "North", StockLevel: 8, StockDescriptor: "medium"},
			{StoreID: "STORE_PHX_MUM", StoreName: "Phoenix Palladium", Address: "High Street Phoenix, Lower Parel, Mumbai - 400013", City: "Mumbai", Region: "West", StockLevel: 12, StockDescriptor: "high"},
			{StoreID: "STORE_UB_BLR", StoreName: "UB City Mall", Address: "24, Vittal Mallya Road, Bangalore - 560001", City: "Bangalore", Region: "South", StockLevel: 6, StockDescriptor: "medium"},
		}
	}

	if location == nil || strings.TrimSpace(location.City) == "" {
		return stores
	}

	city := strings.ToLower(location.City)
	filtered := make([]domain.StoreStock, 0, len(stores))
	for _, store := range stores {
		if strings.Contains(strings.ToLower(store.City), city) || strings.Contains(strings.ToLower(store.Region), city) {
			filtered = append(filtered, store)
		}
	}
	return filtered
}
