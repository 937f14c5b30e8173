package api

import (
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"skincare-storefront/internal/catalog"
)

// CatalogHealthService is the gRPC health service name of the catalog.
const CatalogHealthService = "skincare.storefront.Catalog"

// ReportCatalogHealth marks the server SERVING once every catalog
// collection has loaded and NOT_SERVING otherwise.
func ReportCatalogHealth(hs *health.Server, st catalog.Status) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if st.Ready {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus("", status)
	hs.SetServingStatus(CatalogHealthService, status)
}
