package configloader

import "github.com/yaklabco/gomd2notion/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil
//   - Plain booleans (CLI-only): only true overrides
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeNotion(&result.Notion, override.Notion)
	mergeConvert(&result.Convert, override.Convert)

	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}

	if override.Token != "" {
		result.Token = override.Token
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.DryRun {
		result.DryRun = true
	}

	return result
}

func mergeNotion(dst *config.NotionConfig, src config.NotionConfig) {
	if src.ParentID != "" {
		dst.ParentID = src.ParentID
	}
	if src.ParentType != "" {
		dst.ParentType = src.ParentType
	}
	if src.TitleProperty != "" {
		dst.TitleProperty = src.TitleProperty
	}
	if src.APIURL != "" {
		dst.APIURL = src.APIURL
	}
	if src.APIVersion != "" {
		dst.APIVersion = src.APIVersion
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
}

func mergeConvert(dst *config.ConvertConfig, src config.ConvertConfig) {
	if src.TextLimit != 0 {
		dst.TextLimit = src.TextLimit
	}
	if src.BatchSize != 0 {
		dst.BatchSize = src.BatchSize
	}
	if src.MaxSpans != 0 {
		dst.MaxSpans = src.MaxSpans
	}
	if src.DetectLanguage != nil {
		dst.DetectLanguage = config.Bool(*src.DetectLanguage)
	}
	if src.TitleFromHeading != nil {
		dst.TitleFromHeading = config.Bool(*src.TitleFromHeading)
	}
	if src.StrictNesting != nil {
		dst.StrictNesting = config.Bool(*src.StrictNesting)
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
