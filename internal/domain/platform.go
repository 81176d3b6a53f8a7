package domain

type Platform string

const (
	PlatformUnknown   Platform = "unknown"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
)

func (p Platform) String() string {
	return string(p)
}
