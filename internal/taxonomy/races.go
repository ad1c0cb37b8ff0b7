package taxonomy

var terran = spec{
	categories: []string{
		"SCV", "Marine", "Marauder", "Reaper", "Ghost", "Hellion", "HellionTank", "SiegeTank", "Cyclone", "WidowMine",
		"Thor", "AutoTurret", "Viking", "Medivac", "Liberator", "Raven", "Banshee", "Battlecruiser", "PointDefenseDrone",
		"CommandCenter", "PlanetaryFortress", "OrbitalCommand", "SupplyDepot", "Refinery", "Barracks", "EngineeringBay",
		"Bunker", "SensorTower", "MissileTurret", "Factory", "GhostAcademy", "Starport", "Armory", "FusionCore",
		"CommandCenterFlying", "OrbitalCommandFlying", "BarracksFlying", "FactoryFlying", "StarportFlying", "TechLab",
		"Reactor",
	},
	aliases: map[string]string{
		"SiegeTankSieged":      "SiegeTank",
		"WidowMineBurrowed":    "WidowMine",
		"VikingFighter":        "Viking",
		"VikingAssault":        "Viking",
		"ThorAP":               "Thor",
		"LiberatorAG":          "Liberator",
		"BansheeCloak":         "Banshee",
		"CommandCenterReactor": "CommandCenter",
		"SupplyDepotLowered":   "SupplyDepot",
		"SupplyDepotDrop":      "SupplyDepot",
		"RefineryRich":         "Refinery",
		"BarracksReactor":      "Barracks",
		"BarracksTechLab":      "Barracks",
		"BarracksTechReactor":  "Barracks",
		"FactoryTechLab":       "Factory",
		"FactoryReactor":       "Factory",
		"FactoryTechReactor":   "Factory",
		"StarportTechLab":      "Starport",
		"StarportReactor":      "Starport",
		"StarportTechReactor":  "Starport",
	},
	ignored:        []string{"KD8Charge", "MULE"},
	fitnessIgnored: []string{"KD8Charge", "MULE"},
	buckets: [bucketCount][]string{
		BucketDefensive:  {"Bunker", "MissileTurret", "PlanetaryFortress"},
		BucketProduction: {"Barracks", "BarracksFlying", "BarracksReactor", "BarracksTechLab", "BarracksTechReactor"},
		BucketUpgrade:    {"EngineeringBay", "Armory"},
		BucketTechnology: {"EngineeringBay", "Armory", "GhostAcademy", "FusionCore"},
		BucketBasic:      {"CommandCenter", "CommandCenterFlying", "SupplyDepot", "SupplyDepotDrop", "SupplyDepotLowered", "Refinery", "RefineryRich", "SensorTower", "Reactor"},
		BucketAdvanced: {
			"PlanetaryFortress", "Factory", "FactoryFlying", "Starport", "StarportFlying", "FactoryTechLab",
			"FactoryReactor", "FactoryTechReactor", "StarportTechLab", "StarportReactor", "StarportTechReactor", "TechLab",
		},
		BucketOther: {"OrbitalCommand", "OrbitalCommandFlying"},
		BucketArmy: {
			"Marine", "Marauder", "Reaper", "Ghost", "Hellion", "HellionTank", "SiegeTank", "SiegeTankSieged", "Cyclone",
			"WidowMine", "WidowMineBurrowed", "Thor", "ThorAP", "AutoTurret", "Viking", "VikingFighter", "VikingAssault",
			"Medivac", "Liberator", "LiberatorAG", "Raven", "Banshee", "BansheeCloak", "Battlecruiser", "PointDefenseDrone",
		},
		BucketWorker: {"SCV"},
	},
	workers:   []string{"SCV"},
	townHalls: []string{"CommandCenter", "OrbitalCommand", "PlanetaryFortress"},
	gas:       []string{"Refinery", "RefineryRich"},
}

var zergCocoons = []string{
	"Cocoon", "RavagerCocoon", "BanelingCocoon", "OverlordCocoon", "BroodLordCocoon", "TransportOverlordCocoon",
}

var zerg = spec{
	categories: []string{
		"Drone", "Queen", "Zergling", "Baneling", "Roach", "Ravager", "Hydralisk", "Lurker", "Infestor", "SwarmHostMP",
		"Ultralisk", "LocustMP", "Broodling", "BroodlingEscort", "Changeling", "InfestorTerran", "Overlord", "Overseer",
		"Mutalisk", "Corruptor", "BroodLord", "Viper", "Hatchery", "SpineCrawler", "SporeCrawler", "Extractor",
		"SpawningPool", "EvolutionChamber", "RoachWarren", "BanelingNest", "CreepTumor", "Lair", "HydraliskDen",
		"LurkerDenMP", "InfestationPit", "Spire", "Hive", "GreaterSpire", "UltraliskCavern", "NydusNetwork",
	},
	aliases: map[string]string{
		"DroneBurrowed":           "Drone",
		"QueenBurrowed":           "Queen",
		"ZerglingBurrowed":        "Zergling",
		"BanelingBurrowed":        "Baneling",
		"RoachBurrowed":           "Roach",
		"RavagerBurrowed":         "Ravager",
		"HydraliskBurrowed":       "Hydralisk",
		"LurkerMP":                "Lurker",
		"LurkerMPBurrowed":        "Lurker",
		"InfestorBurrowed":        "Infestor",
		"SwarmHostBurrowedMP":     "SwarmHostMP",
		"UltraliskBurrowed":       "Ultralisk",
		"LocustMPFlying":          "LocustMP",
		"ChangelingMarine":        "Changeling",
		"ChangelingMarineShield":  "Changeling",
		"ChangelingZealot":        "Changeling",
		"ChangelingZergling":      "Changeling",
		"ChangelingZerglingWings": "Changeling",
		"InfestorTerranBurrowed":  "InfestorTerran",
		"OverlordTransport":       "Overlord",
		"OverseerSiegeMode":       "Overseer",
		"SpineCrawlerUprooted":    "SpineCrawler",
		"SporeCrawlerUprooted":    "SporeCrawler",
		"CreepTumorBurrowed":      "CreepTumor",
		"ExtractorRich":           "Extractor",
	},
	ignored: append([]string{"Larva", "Egg", "LurkerMPEgg", "InfestedTerransEgg", "CreepTumorQueen"}, zergCocoons...),
	fitnessIgnored: append([]string{
		"Larva", "Egg", "LurkerMPEgg", "InfestedTerransEgg", "CreepTumor", "CreepTumorBurrowed", "CreepTumorQueen",
	}, zergCocoons...),
	buckets: [bucketCount][]string{
		BucketDefensive: {"SpineCrawler", "SporeCrawler", "SpineCrawlerUprooted", "SporeCrawlerUprooted"},
		BucketUpgrade:   {"EvolutionChamber", "Spire"},
		BucketTechnology: {
			"SpawningPool", "RoachWarren", "BanelingNest", "HydraliskDen", "LurkerDenMP", "Spire", "GreaterSpire",
			"UltraliskCavern",
		},
		BucketBasic:    {"Hatchery", "Extractor", "ExtractorRich", "Overlord", "OverlordTransport"},
		BucketAdvanced: {"Lair", "InfestationPit", "Overseer", "OverseerSiegeMode", "NydusNetwork"},
		BucketOther:    {"Hive"},
		BucketArmy: {
			"Queen", "Zergling", "Baneling", "Roach", "Ravager", "Hydralisk", "Lurker", "Infestor", "SwarmHostMP",
			"Ultralisk", "LocustMP", "Broodling", "BroodlingEscort", "Changeling", "InfestorTerran", "Mutalisk",
			"Corruptor", "BroodLord", "Viper", "QueenBurrowed", "ZerglingBurrowed", "BanelingBurrowed", "RoachBurrowed",
			"RavagerBurrowed", "HydraliskBurrowed", "LurkerMP", "LurkerMPBurrowed", "InfestorBurrowed",
			"SwarmHostBurrowedMP", "UltraliskBurrowed", "LocustMPFlying", "ChangelingMarine", "ChangelingMarineShield",
			"ChangelingZealot", "ChangelingZergling", "ChangelingZerglingWings", "InfestorTerranBurrowed",
		},
		BucketWorker: {"Drone", "DroneBurrowed"},
	},
	workers:   []string{"Drone", "DroneBurrowed"},
	townHalls: []string{"Hatchery", "Lair", "Hive"},
	gas:       []string{"Extractor", "ExtractorRich"},
}

var protoss = spec{
	categories: []string{
		"Probe", "Zealot", "Stalker", "Sentry", "Adept", "HighTemplar", "DarkTemplar", "Immortal", "Colossus",
		"Interceptor", "Disruptor", "Archon", "Observer", "WarpPrism", "Phoenix", "VoidRay", "Oracle", "Carrier",
		"Tempest", "MothershipCore", "Mothership", "Nexus", "Pylon", "Assimilator", "Gateway", "Forge",
		"CyberneticsCore", "PhotonCannon", "ShieldBattery", "RoboticsFacility", "WarpGate", "Stargate",
		"TwilightCouncil", "RoboticsBay", "FleetBeacon", "TemplarArchive", "DarkShrine",
	},
	aliases: map[string]string{
		"ObserverSiegeMode": "Observer",
		"WarpPrismPhasing":  "WarpPrism",
		"PylonOvercharged":  "Pylon",
		"AssimilatorRich":   "Assimilator",
	},
	ignored:        []string{"AdeptPhaseShift", "DisruptorPhased", "OracleStasisTrap"},
	fitnessIgnored: []string{"AdeptPhaseShift", "DisruptorPhased", "OracleStasisTrap"},
	buckets: [bucketCount][]string{
		BucketDefensive:  {"PhotonCannon", "ShieldBattery"},
		BucketProduction: {"Gateway", "RoboticsFacility", "Stargate"},
		BucketUpgrade:    {"Forge", "CyberneticsCore"},
		BucketTechnology: {
			"Forge", "CyberneticsCore", "TwilightCouncil", "RoboticsBay", "FleetBeacon", "TemplarArchive", "DarkShrine",
		},
		BucketBasic:    {"Nexus", "Pylon", "PylonOvercharged", "Assimilator", "AssimilatorRich"},
		BucketAdvanced: {"WarpGate"},
		BucketArmy: {
			"Zealot", "Stalker", "Sentry", "Adept", "HighTemplar", "DarkTemplar", "Immortal", "Colossus", "Interceptor",
			"Disruptor", "Archon", "Observer", "ObserverSiegeMode", "WarpPrism", "WarpPrismPhasing", "Phoenix", "VoidRay",
			"Oracle", "Carrier", "Tempest", "MothershipCore", "Mothership",
		},
		BucketWorker: {"Probe"},
	},
	workers:   []string{"Probe"},
	townHalls: []string{"Nexus"},
	gas:       []string{"Assimilator", "AssimilatorRich"},
}
