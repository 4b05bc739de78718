package domain

const (
	StoreSettingsCollection = "store_settings"
	SiteSettingsCollection  = "site_settings"
)

func IsSettingsCollection(name string) bool {
	return name == StoreSettingsCollection || name == SiteSettingsCollection
}
