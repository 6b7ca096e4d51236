// SPDX-License-Identifier: MPL-2.0

package firmware

import "fmt"

// SecretsVolume returns the deterministic name of the runtime-managed volume
// holding a deployment's secret material. The name scopes the volume to one
// (image, name, deployment) triple: builds for the same deployment share it,
// builds for different deployments never see each other's secrets, and the
// material never appears on the host filesystem. The volume is created by
// the container runtime on first use and persists across builds.
func SecretsVolume(image, name, deployment string) string {
	return fmt.Sprintf("%s.%s.%s.secrets.vol", image, name, deployment)
}
