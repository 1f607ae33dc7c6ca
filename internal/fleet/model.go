package fleet

import (
	"time"

	"github.com/openfleet/openfleet/internal/vehicle"
)

// Status 车辆生命周期状态枚举（持久化为字符串）。
type Status string

const (
	StatusRegistered  Status = "registered"  // 已登记，未投入运营
	StatusActive      Status = "active"      // 运营中
	StatusMaintenance Status = "maintenance" // 维保中
	StatusRetired     Status = "retired"     // 已退役（终态）
)

// Record 是 fleet_vehicles 表的 GORM 模型。
// 车辆的行为状态（速度/电量/是否启动）也持久化在这里，
// 每次行为操作前通过 codec 还原为领域对象，操作后写回。
type Record struct {
	ID          string       `gorm:"primaryKey;size:36"`
	PlateNumber string       `gorm:"uniqueIndex;size:32;not null"`
	Kind        vehicle.Kind `gorm:"type:varchar(16);index;not null"` // car / motorcycle / electric_car
	OwnerID     string       `gorm:"index;size:36"`
	Status      Status       `gorm:"type:varchar(16);index;not null"`

	// 基础属性（构造后不变）
	Model string `gorm:"size:64;not null"`
	Year  int    `gorm:"not null"`
	Color string `gorm:"size:32"`

	// 车型专有属性
	Doors      int  // car / electric_car
	Seats      int  // car / electric_car
	HasSidecar bool // motorcycle

	// 电动车专有属性（kWh / km/kWh）
	BatteryCapacity float64
	CurrentCharge   float64
	Efficiency      float64

	// 行为状态
	CurrentSpeed float64
	Running      bool

	// 时间信息
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	ActivatedAt *time.Time
	RetiredAt   *time.Time
}

func (Record) TableName() string {
	return "fleet_vehicles"
}
