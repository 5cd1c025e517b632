package domain

// StockStatus describes online availability derived from warehouse stock
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// WarehouseStock is the stock level of one product in one regional warehouse
type WarehouseStock struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Location      string `json:"location"`
	StockLevel    int    `json:"stock_level"`
	ShippingTime  string `json:"estimated_shipping_time"`
}

// StoreStock is the stock level of one product in one physical store
type StoreStock struct {
	StoreID         string `json:"store_id"`
	StoreName       string `json:"store_name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Region          string `json:"region"`
	StockLevel      int    `json:"stock_level"`
	StockDescriptor string `json:"stock_descriptor"`
}

// InventoryReport aggregates online and in-store availability for a product
type InventoryReport struct {
	ProductID        string           `json:"product_id"`
	OnlineStatus     StockStatus      `json:"online_status"`
	TotalOnlineStock int              `json:"total_online_stock"`
	Warehouses       []WarehouseStock `json:"warehouses"`
	Stores           []StoreStock     `json:"stores"`
}
