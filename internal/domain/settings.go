package domain

import "time"

// SettingsDocID is the fixed id of the single store configuration document.
const SettingsDocID = "storeConfig"

// StoreSettings is the admin-editable storefront configuration. One document
// exists per store.
type StoreSettings struct {
	ID            string    `bson:"_id" json:"-"`
	StoreName     string    `bson:"store_name" json:"storeName"`
	WhatsAppPhone string    `bson:"whatsapp_phone" json:"whatsappPhone"`
	DefaultLang   string    `bson:"default_lang" json:"defaultLang"`
	Announcement  string    `bson:"announcement,omitempty" json:"announcement,omitempty"`
	TryOnDailyCap int       `bson:"tryon_daily_cap" json:"tryOnDailyCap"`
	UpdatedAt     time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
