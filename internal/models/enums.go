package models

type Crop string

const (
	CropRice         Crop = "Rice"
	CropWheat        Crop = "Wheat"
	CropSugarcane    Crop = "Sugarcane"
	CropCoconutFiber Crop = "Coconut Fiber"
	CropPeanutShell  Crop = "Peanut Shell"
	CropCornStalks   Crop = "Corn stalks"
	CropCottonWaste  Crop = "Cotton waste"
)

type LandUnit string

const (
	LandUnitAcre    LandUnit = "Acre"
	LandUnitHectare LandUnit = "Hectare"
	LandUnitBigha   LandUnit = "Bigha"
)

type YieldUnit string

const (
	YieldUnitTon     YieldUnit = "Ton"
	YieldUnitQuintal YieldUnit = "Quintal"
	YieldUnitKg      YieldUnit = "Kg"
)

type WasteType string

const (
	WasteWet WasteType = "Wet"
	WasteDry WasteType = "Dry"
)

type ChosenAction string

const (
	ActionSell        ChosenAction = "Sell"
	ActionAISolutions ChosenAction = "AI Solutions"
)

type PickupStatus string

const (
	PickupPending   PickupStatus = "Pending"
	PickupScheduled PickupStatus = "Scheduled"
	PickupInTransit PickupStatus = "In Transit"
	PickupCompleted PickupStatus = "Completed"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)
