package reviewcontext

import (
	inspectorerrors "inspector/internal/errors"
	"inspector/internal/platform"
)

// ReadmeFromBuild extracts the README from a build record. Documentation is
// mandatory: a package without a README is a defect, not an N/A.
func ReadmeFromBuild(actorName string, build *platform.Build) (string, error) {
	if build == nil || build.ActorDefinition == nil {
		return "", &inspectorerrors.MissingFieldError{Field: "actorDefinition", Actor: actorName}
	}
	if build.ActorDefinition.Readme == "" {
		return "", &inspectorerrors.MissingFieldError{Field: "readme", Actor: actorName}
	}
	return build.ActorDefinition.Readme, nil
}
