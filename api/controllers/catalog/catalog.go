package catalog

import (
	"net/http"

	"github.com/angelmondragon/windowquote-backend/api/responses"
	"github.com/angelmondragon/windowquote-backend/internal/reference"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
)

type catalogResponse struct {
	*reference.Catalog
	OperationTypes []enums.OperationType `json:"operation_types"`
}

// Get returns the active options the configurator offers.
func Get(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reference service unavailable"))
			return
		}
		catalog, err := svc.Catalog(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalogResponse{Catalog: catalog, OperationTypes: enums.OperationTypes()})
	}
}
